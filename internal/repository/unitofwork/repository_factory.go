package unitofwork

import "context"

// RepositoryFactory hands out unit-of-work scopes bound to a context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
