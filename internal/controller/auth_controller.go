package controller

import (
	"errors"

	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"
	"trademini-be/pkg/telegram"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	MiniAppSession(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{authService: authService}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")

	h.Post("/miniapp-session", c.MiniAppSession)
}

func (c *authController) MiniAppSession(ctx *fiber.Ctx) error {
	var req dto.MiniAppSessionRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.MiniAppSession(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, telegram.ErrInitDataSignature) || errors.Is(err, telegram.ErrInitDataExpired) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Session established", res))
}
