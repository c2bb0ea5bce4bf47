package controller

import (
	"trademini-be/internal/dto"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IPlanController covers the plan catalog, promo validation, and
// per-user plan selection.
type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	ValidatePromo(ctx *fiber.Ctx) error
	SelectPlan(ctx *fiber.Ctx) error
	GetPreferences(ctx *fiber.Ctx) error
}

type planController struct {
	planService       service.IPlanService
	promoService      service.IPromoService
	preferenceService service.IPreferenceService
}

func NewPlanController(
	planService service.IPlanService,
	promoService service.IPromoService,
	preferenceService service.IPreferenceService,
) IPlanController {
	return &planController{
		planService:       planService,
		promoService:      promoService,
		preferenceService: preferenceService,
	}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	// Catalog is public: the mini-app shows prices before the user has
	// a session.
	r.Get("/plans", c.GetPlans)
	r.Post("/plans/validate-promo", c.ValidatePromo)

	user := r.Group("/user", serverutils.JwtMiddleware)
	user.Post("/plans/select", c.SelectPlan)
	user.Get("/preferences", c.GetPreferences)
}

func (c *planController) GetPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.GetPlans(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

// ValidatePromo answers 200 for both usable and unusable codes; the
// Valid flag and Reason carry the verdict. Only infrastructure
// failures produce an error status.
func (c *planController) ValidatePromo(ctx *fiber.Ctx) error {
	var req dto.ValidatePromoRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.promoService.Validate(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Promo code checked", res))
}

func (c *planController) SelectPlan(ctx *fiber.Ctx) error {
	userId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.SelectPlanRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.planService.SelectPlan(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Plan selected", res))
}

func (c *planController) GetPreferences(ctx *fiber.Ctx) error {
	userId, err := sessionUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	prefs, err := c.preferenceService.Load(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Preferences retrieved", prefs))
}
