package dto

import (
	"time"

	"github.com/google/uuid"
)

type PaymentListRequest struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type PaymentResponse struct {
	Id           uuid.UUID `json:"id"`
	UserId       uuid.UUID `json:"user_id"`
	UserTelegram *int64    `json:"user_telegram,omitempty"`
	UserName     string    `json:"user_name"`
	PlanName     string    `json:"plan_name"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	AmountLabel  string    `json:"amount_label"`
	Method       string    `json:"method"`
	Status       string    `json:"status"`
	BadgeColor   string    `json:"badge_color"`
	ProviderRef  *string   `json:"provider_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// CanReview gates the approve/reject actions in the console.
	CanReview bool `json:"can_review"`
}

// PaymentActionRequest multiplexes the review decision.
type PaymentActionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason,omitempty"`
}

type CheckoutRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	PromoCode string    `json:"promo_code,omitempty"`
}

type CheckoutResponse struct {
	PaymentId   uuid.UUID `json:"payment_id"`
	OrderId     string    `json:"order_id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	RedirectURL string    `json:"redirect_url"`
	SnapToken   string    `json:"snap_token"`
}

// ProviderWebhookRequest mirrors the payment provider's settlement
// callback fields we act on.
type ProviderWebhookRequest struct {
	OrderId           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}
