package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBroadcastRequest struct {
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content,omitempty"`
	TargetAudience string     `json:"target_audience" validate:"required,oneof=all subscribers free"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
}

type BroadcastResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Content        *string    `json:"content,omitempty"`
	TargetAudience string     `json:"target_audience"`
	DeliveryStatus string     `json:"delivery_status"`
	BadgeColor     string     `json:"badge_color"`
	RecipientCount int        `json:"recipient_count"`
	SuccessCount   int        `json:"success_count"`
	FailureCount   int        `json:"failure_count"`
	CreatedAt      time.Time  `json:"created_at"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
}

// BroadcastJob is the payload queued for the delivery worker.
type BroadcastJob struct {
	BroadcastId uuid.UUID `json:"broadcast_id"`
}
