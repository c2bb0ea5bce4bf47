package contract

import (
	"context"

	"trademini-be/internal/entity"
	"trademini-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TelegramIdsForAudience resolves a broadcast audience selector to
	// the chat ids the worker should deliver to.
	TelegramIdsForAudience(ctx context.Context, audience string) ([]int64, error)
}
