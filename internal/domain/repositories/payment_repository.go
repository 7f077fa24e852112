package repositories

import (
	"context"

	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	List(ctx context.Context, params entities.ListPaymentsParams, limit, offset int) ([]*entities.Payment, int64, error)
	Update(ctx context.Context, payment *entities.Payment) error
	UpdateAdjusted(ctx context.Context, id uuid.UUID, adjusted bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// AppendLogs writes the combined logs sequence back to the payment. The
	// write only applies while the stored log version still equals
	// expectedVersion; ErrConflict is returned otherwise so the enclosing
	// transaction rolls back.
	AppendLogs(ctx context.Context, id uuid.UUID, logs []entities.AllocationLine, expectedVersion int) error
	SumAmount(ctx context.Context) (float64, error)
	MonthlyTotals(ctx context.Context) ([]entities.MonthlyTotal, error)
}

// InvestmentRepository defines investment data operations
type InvestmentRepository interface {
	Create(ctx context.Context, investment *entities.Investment) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entities.Investment, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
