package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/pkg/view"
)

type IPromoService interface {
	// Validate checks a promo code against a plan. A code that is
	// unknown, expired, inactive, or used up yields Valid=false with a
	// Reason — that is a successful validation, not an error. Errors
	// are reserved for infrastructure failures.
	Validate(ctx context.Context, req *dto.ValidatePromoRequest) (*dto.PromoValidationResponse, error)
}

type promoService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPromoService(uowFactory unitofwork.RepositoryFactory) IPromoService {
	return &promoService{uowFactory: uowFactory}
}

func (s *promoService) Validate(ctx context.Context, req *dto.ValidatePromoRequest) (*dto.PromoValidationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	base := &dto.PromoValidationResponse{
		Code:       code,
		BasePrice:  plan.Price,
		PriceLabel: view.FormatMoney(plan.Price, plan.Currency),
	}

	invalid := func(reason string) *dto.PromoValidationResponse {
		base.Valid = false
		base.Reason = reason
		return base
	}

	promo, err := uow.PromoRepository().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return invalid("code not found"), nil
	}
	if !promo.IsActive {
		return invalid("code is no longer active"), nil
	}
	if promo.ExpiresAt != nil && promo.ExpiresAt.Before(time.Now()) {
		return invalid("code has expired"), nil
	}
	if promo.MaxUses >= 0 && promo.UseCount >= promo.MaxUses {
		return invalid("code has been fully redeemed"), nil
	}

	final := view.PromoPrice(plan.Price, string(promo.DiscountType), promo.DiscountValue, nil)

	base.Valid = true
	base.DiscountType = string(promo.DiscountType)
	base.DiscountValue = promo.DiscountValue
	base.FinalAmount = &final
	base.PriceLabel = view.FormatMoney(final, plan.Currency)
	return base, nil
}
