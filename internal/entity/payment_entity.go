package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

type Payment struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	PlanId      uuid.UUID
	Amount      float64
	Currency    string
	Method      string
	Status      PaymentStatus
	ProviderRef *string
	ReviewedBy  *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaymentDetail is a projection for the review panel (joined data).
type PaymentDetail struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	UserTelegram *int64
	UserName     string
	PlanName     string
	Amount       float64
	Currency     string
	Method       string
	Status       PaymentStatus
	ProviderRef  *string
	CreatedAt    time.Time
}
