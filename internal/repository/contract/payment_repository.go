package contract

import (
	"context"

	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	Update(ctx context.Context, payment *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)

	// GetDetails joins user and plan rows for the review panel.
	GetDetails(ctx context.Context, status string, limit, offset int) ([]*entity.PaymentDetail, error)

	// GetDetail is the single-row form of GetDetails, keyed by payment id.
	GetDetail(ctx context.Context, id uuid.UUID) (*entity.PaymentDetail, error)

	// Dashboard aggregates
	GetTotalRevenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
