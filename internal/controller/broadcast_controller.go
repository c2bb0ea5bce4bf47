package controller

import (
	"errors"

	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBroadcastController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	GetOne(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type broadcastController struct {
	broadcastService service.IBroadcastService
}

func NewBroadcastController(broadcastService service.IBroadcastService) IBroadcastController {
	return &broadcastController{broadcastService: broadcastService}
}

func (c *broadcastController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/broadcasts", serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	h.Get("/", c.List)
	h.Get("/:id", c.GetOne)
	h.Post("/", c.Create)
}

func (c *broadcastController) List(ctx *fiber.Ctx) error {
	broadcasts, err := c.broadcastService.List(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Broadcasts retrieved", broadcasts))
}

func (c *broadcastController) GetOne(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid broadcast ID"))
	}

	b, err := c.broadcastService.GetOne(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBroadcastNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Broadcast retrieved", b))
}

func (c *broadcastController) Create(ctx *fiber.Ctx) error {
	actorId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateBroadcastRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	b, err := c.broadcastService.Create(ctx.Context(), actorId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Broadcast queued", b))
}
