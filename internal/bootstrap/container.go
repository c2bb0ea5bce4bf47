package bootstrap

import (
	"context"
	"log"

	"trademini-be/internal/config"
	"trademini-be/internal/controller"
	"trademini-be/internal/pkg/logger"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/internal/service"
	"trademini-be/internal/websocket"
	"trademini-be/pkg/telegram"

	pktNats "trademini-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const broadcastTopic = "BROADCAST_DELIVERY"

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	AdminController     controller.IAdminController
	BanController       controller.IBanController
	BroadcastController controller.IBroadcastController
	PaymentController   controller.IPaymentController
	PlanController      controller.IPlanController
	BotController       controller.IBotController

	// Background Services (Exposed for main.go to run)
	BroadcastWorker service.IBroadcastWorker
	EventTrail      service.IEventTrailService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub for the live admin console
	wsLogger := logger.NewIsolatedLogger("logs/console.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Telegram Bot API client
	bot := telegram.NewBotClient(cfg.Telegram.ApiBaseURL, cfg.Telegram.BotToken)

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, broadcastTopic)

	auditService := service.NewAuditService(uowFactory, sysLogger)
	banService := service.NewBanService(uowFactory, auditService, natsPub)
	authService := service.NewAuthService(uowFactory, banService, cfg)
	preferenceService := service.NewPreferenceService(rdb)
	planService := service.NewPlanService(uowFactory, preferenceService)
	promoService := service.NewPromoService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, promoService, auditService, natsPub, wsHub, cfg)
	broadcastService := service.NewBroadcastService(uowFactory, auditService, publisherService, natsPub)
	analyticsService := service.NewAnalyticsService(uowFactory)
	botService := service.NewBotService(bot, rdb, cfg, natsPub, sysLogger)

	eventTrail := service.NewEventTrailService(natsSub, auditService, sysLogger)

	broadcastWorker := service.NewBroadcastWorker(
		pubSub,
		broadcastTopic,
		uowFactory,
		bot,
		wsHub,
		natsPub,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		WebSocketHub:        wsHub,
		AuthController:      controller.NewAuthController(authService),
		AdminController:     controller.NewAdminController(authService, analyticsService, auditService),
		BanController:       controller.NewBanController(banService),
		BroadcastController: controller.NewBroadcastController(broadcastService),
		PaymentController:   controller.NewPaymentController(paymentService),
		PlanController:      controller.NewPlanController(planService, promoService, preferenceService),
		BotController:       controller.NewBotController(botService),

		BroadcastWorker: broadcastWorker,
		EventTrail:      eventTrail,
	}
}
