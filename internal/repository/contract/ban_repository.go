package contract

import (
	"context"

	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BanRepository interface {
	Create(ctx context.Context, ban *entity.Ban) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ban, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ban, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
