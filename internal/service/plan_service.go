package service

import (
	"context"
	"errors"
	"time"

	"trademini-be/internal/dto"
	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"
	"trademini-be/internal/repository/unitofwork"
	"trademini-be/pkg/view"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const planCacheKey = "plans:active"

// IPlanService serves the plan catalog from an in-process cache; the
// catalog changes rarely and is fetched once per mini-app session.
type IPlanService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)

	// SelectPlan records the user's picked plan in their preferences
	// and bumps the selection tally used by analytics.
	SelectPlan(ctx context.Context, userId uuid.UUID, req *dto.SelectPlanRequest) (*dto.SelectPlanResponse, error)

	// InvalidateCache drops the cached catalog after an admin edit.
	InvalidateCache()
}

type planService struct {
	uowFactory  unitofwork.RepositoryFactory
	preferences IPreferenceService
	catalog     *cache.Cache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, preferences IPreferenceService) IPlanService {
	return &planService{
		uowFactory:  uowFactory,
		preferences: preferences,
		catalog:     cache.New(5*time.Minute, 10*time.Minute),
	}
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return &dto.PlanResponse{
		Id:           p.Id,
		Name:         p.Name,
		Description:  p.Slug,
		Price:        p.Price,
		Currency:     p.Currency,
		PriceLabel:   view.FormatMoney(p.Price, p.Currency),
		DurationDays: p.DurationDays,
		IsLifetime:   p.IsLifetime,
		Features:     features,
	}
}

func (s *planService) GetPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	if cached, found := s.catalog.Get(planCacheKey); found {
		return cached.([]*dto.PlanResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.PlanRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "sort_order", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, toPlanResponse(p))
	}

	s.catalog.Set(planCacheKey, res, cache.DefaultExpiration)
	return res, nil
}

func (s *planService) SelectPlan(ctx context.Context, userId uuid.UUID, req *dto.SelectPlanRequest) (*dto.SelectPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.PlanRepository().FindOne(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	if err := s.preferences.SaveSelectedPlan(ctx, userId, plan.Id); err != nil {
		return nil, err
	}

	hits, err := s.preferences.BumpPlanTally(ctx, plan.Id)
	if err != nil {
		return nil, err
	}

	return &dto.SelectPlanResponse{
		PlanId:    plan.Id,
		Selected:  true,
		TallyHits: hits,
	}, nil
}

func (s *planService) InvalidateCache() {
	s.catalog.Delete(planCacheKey)
}
