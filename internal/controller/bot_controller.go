package controller

import (
	"errors"

	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"
	"trademini-be/pkg/panel"

	"github.com/gofiber/fiber/v2"
)

type IBotController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	RotateSecret(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type botController struct {
	botService service.IBotService
}

func NewBotController(botService service.IBotService) IBotController {
	return &botController{botService: botService}
}

func (c *botController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/bot", serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	h.Get("/status", c.Status)
	h.Post("/rotate-secret", c.RotateSecret)
	h.Post("/reset", c.Reset)
}

func (c *botController) Status(ctx *fiber.Ctx) error {
	refresh := ctx.QueryBool("refresh", false)

	status, err := c.botService.Status(ctx.Context(), refresh)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Bot status retrieved", status))
}

func (c *botController) RotateSecret(ctx *fiber.Ctx) error {
	res, err := c.botService.RotateWebhookSecret(ctx.Context())
	if err != nil {
		if errors.Is(err, panel.ErrAlreadySubmitting) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "A webhook operation is already in progress"))
		}
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Webhook secret rotated", res))
}

func (c *botController) Reset(ctx *fiber.Ctx) error {
	res, err := c.botService.Reset(ctx.Context())
	if err != nil {
		if errors.Is(err, panel.ErrAlreadySubmitting) {
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "A webhook operation is already in progress"))
		}
		return ctx.Status(fiber.StatusBadGateway).JSON(serverutils.ErrorResponse(502, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Bot reset", res))
}
