package unitofwork

import (
	"context"

	"trademini-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	BanRepository() contract.BanRepository
	AdminLogRepository() contract.AdminLogRepository
	BroadcastRepository() contract.BroadcastRepository
	PlanRepository() contract.PlanRepository
	PaymentRepository() contract.PaymentRepository
	PromoRepository() contract.PromoRepository
}
