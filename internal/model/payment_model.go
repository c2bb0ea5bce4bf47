package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount      float64    `gorm:"type:decimal(10,2);not null"`
	Currency    string     `gorm:"type:varchar(10);not null;default:'USD'"`
	Method      string     `gorm:"type:varchar(50);not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ProviderRef *string    `gorm:"type:varchar(255)"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
