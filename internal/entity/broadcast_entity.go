package entity

import (
	"time"

	"github.com/google/uuid"
)

type BroadcastStatus string

const (
	BroadcastStatusScheduled BroadcastStatus = "scheduled"
	BroadcastStatusSending   BroadcastStatus = "sending"
	BroadcastStatusCompleted BroadcastStatus = "completed"
	BroadcastStatusFailed    BroadcastStatus = "failed"
)

// Audience selectors for a broadcast.
const (
	AudienceAll         = "all"
	AudienceSubscribers = "subscribers"
	AudienceFree        = "free"
)

type BroadcastMessage struct {
	Id             uuid.UUID
	Title          string
	Content        *string
	TargetAudience string
	DeliveryStatus BroadcastStatus
	RecipientCount int
	SuccessCount   int
	FailureCount   int
	CreatedBy      *uuid.UUID
	CreatedAt      time.Time
	ScheduledAt    *time.Time
	SentAt         *time.Time
}
