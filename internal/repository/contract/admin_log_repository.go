package contract

import (
	"context"

	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"

	"github.com/google/uuid"
)

// AdminLogRepository is append-only: no update or delete exists.
type AdminLogRepository interface {
	Create(ctx context.Context, log *entity.AdminLog) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.AdminLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AdminLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
