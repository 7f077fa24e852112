package repositories

import (
	"context"

	"github.com/google/uuid"
	"invest-desk.backend/internal/domain/entities"
)

// InvestorRepository defines investor data operations
type InvestorRepository interface {
	Create(ctx context.Context, investor *entities.Investor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investor, error)
	List(ctx context.Context, params entities.ListInvestorsParams, limit, offset int) ([]*entities.Investor, int64, error)
	Update(ctx context.Context, investor *entities.Investor) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestorStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// ExistsByUID and ExistsByEmail back uniqueness validation; excludeID
	// skips the record being updated (uuid.Nil on create).
	ExistsByUID(ctx context.Context, uid string, excludeID uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// AccountRepository defines account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	List(ctx context.Context, params entities.ListAccountsParams, limit, offset int) ([]*entities.Account, int64, error)
	ListActiveByInvestor(ctx context.Context, investorID uuid.UUID) ([]*entities.Account, error)
	Update(ctx context.Context, account *entities.Account) error
	UpdateActive(ctx context.Context, id uuid.UUID, active bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}
