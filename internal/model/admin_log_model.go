package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AdminLog struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActionType    string         `gorm:"type:varchar(50);not null;index"`
	Description   string         `gorm:"type:text;not null"`
	AffectedTable *string        `gorm:"type:varchar(50)"`
	OldValues     datatypes.JSON `gorm:"type:jsonb"`
	NewValues     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"default:now();not null;index"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}
