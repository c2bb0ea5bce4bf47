package controller

import (
	"errors"

	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	ListPending(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	ProviderWebhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{paymentService: paymentService}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	admin := r.Group("/admin/payments", serverutils.JwtMiddleware, serverutils.AdminMiddleware)
	admin.Get("/", c.ListPending)
	admin.Post("/:id/review", c.Review)

	user := r.Group("/payments")
	user.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)

	// Provider callback authenticates via its signature, not a session.
	user.Post("/notification", c.ProviderWebhook)
}

func (c *paymentController) ListPending(ctx *fiber.Ctx) error {
	var req dto.PaymentListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid query parameters"))
	}

	payments, err := c.paymentService.ListPending(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Payments retrieved", payments))
}

func (c *paymentController) Review(ctx *fiber.Ctx) error {
	actorId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid payment ID"))
	}

	var req dto.PaymentActionRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	payment, err := c.paymentService.Review(ctx.Context(), actorId, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrPaymentFinalized), errors.Is(err, service.ErrUnknownAction):
			return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
		}
	}

	return ctx.JSON(serverutils.SuccessResponse("Payment reviewed", payment))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CheckoutRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.paymentService.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) ProviderWebhook(ctx *fiber.Ctx) error {
	var req dto.ProviderWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid notification body"))
	}

	if err := c.paymentService.HandleProviderWebhook(ctx.Context(), &req); err != nil {
		// The provider retries on non-2xx; reject bad signatures hard
		// but keep transient failures retryable.
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Notification processed", fiber.Map{}))
}
