package dto

import (
	"github.com/google/uuid"
)

type PlanResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	PriceLabel   string    `json:"price_label"`
	DurationDays int       `json:"duration_days"`
	IsLifetime   bool      `json:"is_lifetime"`
	Features     []string  `json:"features"`
}

type SelectPlanRequest struct {
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

type SelectPlanResponse struct {
	PlanId    uuid.UUID `json:"plan_id"`
	Selected  bool      `json:"selected"`
	TallyHits int64     `json:"tally_hits"`
}
