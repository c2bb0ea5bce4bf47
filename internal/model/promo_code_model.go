package model

import (
	"time"

	"github.com/google/uuid"
)

type PromoCode struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	DiscountType  string    `gorm:"type:varchar(20);not null"`
	DiscountValue float64   `gorm:"type:decimal(10,2);not null"`
	MaxUses       int       `gorm:"default:-1"` // -1 = unlimited
	UseCount      int       `gorm:"default:0"`
	IsActive      bool      `gorm:"default:true"`
	ExpiresAt     *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (PromoCode) TableName() string {
	return "promo_codes"
}
