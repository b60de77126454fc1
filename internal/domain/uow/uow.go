package uow

import "context"

// UnitOfWork scopes a set of repository writes to one transaction.
// Writes issued with the ctx passed to fn are committed together when fn
// returns nil and rolled back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
