package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into a single atomic operation
type UnitOfWork interface {
	// Do runs fn inside one transaction, committing only if fn returns nil
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
