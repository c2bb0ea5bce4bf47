package server

import (
	"log"
	"os"

	"trademini-be/internal/bootstrap"
	"trademini-be/internal/config"
	"trademini-be/internal/pkg/serverutils"
	ws "trademini-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, payloads here are small JSON bodies
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Telegram-Init-Data",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)
	registerWebSocket(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)
	c.BanController.RegisterRoutes(api)
	c.BroadcastController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)
	c.PlanController.RegisterRoutes(api)
	c.BotController.RegisterRoutes(api)
}

func registerWebSocket(app *fiber.App, c *bootstrap.Container) {
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// Browsers cannot set headers on websocket upgrades, so the token
	// rides in the query string.
	app.Get("/ws/console", websocket.New(func(conn *websocket.Conn) {
		tokenStr := conn.Query("token")
		userId, ok := parseAdminToken(tokenStr)
		if !ok {
			conn.Close()
			return
		}
		ws.ServeWs(c.WebSocketHub, conn, userId)
	}))
}

func parseAdminToken(tokenStr string) (uuid.UUID, bool) {
	if tokenStr == "" {
		return uuid.Nil, false
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return uuid.Nil, false
	}
	idStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userId, true
}
