package controller

import (
	"errors"

	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBanController interface {
	RegisterRoutes(r fiber.Router)
	Execute(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
}

type banController struct {
	banService service.IBanService
}

func NewBanController(banService service.IBanService) IBanController {
	return &banController{banService: banService}
}

func (c *banController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/bans", serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	// The panel drives everything through the multiplexed POST; the
	// GET and DELETE aliases exist for direct API consumers.
	h.Post("/", c.Execute)
	h.Get("/", c.List)
	h.Delete("/:id", c.Remove)
}

func (c *banController) Execute(ctx *fiber.Ctx) error {
	actorId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.BanActionRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	bans, err := c.banService.Execute(ctx.Context(), actorId, &req)
	if err != nil {
		return banError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Bans retrieved", bans))
}

func (c *banController) List(ctx *fiber.Ctx) error {
	bans, err := c.banService.List(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Bans retrieved", bans))
}

func (c *banController) Remove(ctx *fiber.Ctx) error {
	actorId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ban ID"))
	}

	if err := c.banService.Remove(ctx.Context(), actorId, id); err != nil {
		return banError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Ban removed", fiber.Map{"id": id}))
}

func banError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrBanNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrAlreadyBanned), errors.Is(err, service.ErrUnknownAction):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
