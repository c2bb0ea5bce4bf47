package model

import (
	"time"

	"github.com/google/uuid"
)

type Ban struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TelegramId string     `gorm:"type:varchar(64);not null;index"`
	Reason     *string    `gorm:"type:text"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time  `gorm:"default:now();not null"`
	ExpiresAt  *time.Time `gorm:"index"`
}

func (Ban) TableName() string {
	return "bans"
}
