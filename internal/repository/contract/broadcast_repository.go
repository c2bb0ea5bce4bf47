package contract

import (
	"context"

	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BroadcastRepository interface {
	Create(ctx context.Context, msg *entity.BroadcastMessage) error
	Update(ctx context.Context, msg *entity.BroadcastMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BroadcastMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BroadcastMessage, error)

	// UpdateCounters bumps success/failure tallies while a send worker
	// is running, without touching the rest of the row.
	UpdateCounters(ctx context.Context, id uuid.UUID, success, failure int) error
}
