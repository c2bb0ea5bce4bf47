package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ban blocks a Telegram identity from the mini-app. A nil ExpiresAt is
// a permanent ban. Whether a ban reads as "expired" is derived at view
// time from ExpiresAt vs the clock; nothing here flips state on its own.
type Ban struct {
	Id         uuid.UUID
	TelegramId string
	Reason     *string
	CreatedBy  *uuid.UUID
	CreatedAt  time.Time
	ExpiresAt  *time.Time
}
