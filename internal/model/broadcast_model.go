package model

import (
	"time"

	"github.com/google/uuid"
)

type BroadcastMessage struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string     `gorm:"type:varchar(255);not null"`
	Content        *string    `gorm:"type:text"`
	TargetAudience string     `gorm:"type:varchar(50);not null;default:'all'"`
	DeliveryStatus string     `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	RecipientCount int        `gorm:"default:0"`
	SuccessCount   int        `gorm:"default:0"`
	FailureCount   int        `gorm:"default:0"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"default:now();not null;index"`
	ScheduledAt    *time.Time
	SentAt         *time.Time
}

func (BroadcastMessage) TableName() string {
	return "broadcast_messages"
}
