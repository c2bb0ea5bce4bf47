package contract

import (
	"context"

	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *entity.PromoCode) error
	Update(ctx context.Context, promo *entity.PromoCode) error
	FindByCode(ctx context.Context, code string) (*entity.PromoCode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromoCode, error)
	IncrementUseCount(ctx context.Context, id uuid.UUID) error
}
