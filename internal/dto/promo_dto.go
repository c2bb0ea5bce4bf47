package dto

import (
	"github.com/google/uuid"
)

type ValidatePromoRequest struct {
	Code   string    `json:"code" validate:"required"`
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

// PromoValidationResponse is returned with a 200 whether or not the
// code is usable. A business rejection is a valid outcome, not an
// error, so the caller can render the reason inline.
type PromoValidationResponse struct {
	Valid         bool     `json:"valid"`
	Reason        string   `json:"reason,omitempty"`
	Code          string   `json:"code"`
	DiscountType  string   `json:"discount_type,omitempty"`
	DiscountValue float64  `json:"discount_value,omitempty"`
	BasePrice     float64  `json:"base_price"`
	FinalAmount   *float64 `json:"final_amount,omitempty"`
	PriceLabel    string   `json:"price_label"`
}
