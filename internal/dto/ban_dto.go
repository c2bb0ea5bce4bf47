package dto

import (
	"time"

	"github.com/google/uuid"
)

// BanActionRequest is the multiplexed request body for the bans panel.
// Action selects list/add/remove; the remaining fields apply per action.
type BanActionRequest struct {
	Action     string     `json:"action" validate:"required,oneof=list add remove"`
	BanId      *uuid.UUID `json:"ban_id,omitempty"`
	TelegramId string     `json:"telegram_id,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type CreateBanRequest struct {
	TelegramId string     `json:"telegram_id" validate:"required"`
	Reason     string     `json:"reason,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type BanResponse struct {
	Id         uuid.UUID  `json:"id"`
	TelegramId string     `json:"telegram_id"`
	Reason     *string    `json:"reason,omitempty"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	// Badge is "" (permanent), "Active", or "Expired" — derived from
	// ExpiresAt against the clock at response-build time.
	Badge   string `json:"badge,omitempty"`
	Expired bool   `json:"expired"`
}
