package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Plan struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Slug         string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Price        float64        `gorm:"type:decimal(10,2);not null"`
	Currency     string         `gorm:"type:varchar(10);not null;default:'USD'"`
	DurationDays int            `gorm:"default:30"`
	IsLifetime   bool           `gorm:"default:false"`
	Features     datatypes.JSON `gorm:"type:jsonb"`
	IsActive     bool           `gorm:"default:true"`
	SortOrder    int            `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Plan) TableName() string {
	return "plans"
}
