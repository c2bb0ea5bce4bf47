package controller

import (
	"strconv"

	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	GetDashboardStats(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
	GetServiceLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	authService      service.IAuthService
	analyticsService service.IAnalyticsService
	auditService     service.IAuditService
}

func NewAdminController(
	authService service.IAuthService,
	analyticsService service.IAnalyticsService,
	auditService service.IAuditService,
) IAdminController {
	return &adminController{
		authService:      authService,
		analyticsService: analyticsService,
		auditService:     auditService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	// Public Admin Route (Login)
	h.Post("/login", c.Login)

	// Protected Routes
	h.Use(serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	h.Get("/dashboard", c.GetDashboardStats)
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
	h.Get("/service-logs", c.GetServiceLogs)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.LoginAdmin(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	stats, err := c.analyticsService.GetStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats retrieved", stats))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	var req dto.AdminLogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid query parameters"))
	}

	logs, total, err := c.auditService.List(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Logs retrieved", fiber.Map{
		"logs":  logs,
		"total": total,
	}))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid log ID"))
	}

	log, err := c.auditService.GetOne(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if log == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Log retrieved", log))
}

func (c *adminController) GetServiceLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	logs, err := c.auditService.ServiceLogs(level, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Service logs retrieved", logs))
}
