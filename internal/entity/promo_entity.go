package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromoCode struct {
	Id            uuid.UUID
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	MaxUses       int // -1 = unlimited
	UseCount      int
	IsActive      bool
	ExpiresAt     *time.Time
	CreatedAt     time.Time
}
