package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/infrastructure/models"
)

// InvestmentRepository implements investment data operations
type InvestmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create creates a new investment row
func (r *InvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	if investment.ID == uuid.Nil {
		investment.ID = uuid.New()
	}
	m := &models.Investment{
		ID:        investment.ID,
		AccountID: investment.AccountID,
		ForMonth:  investment.ForMonth,
		Amount:    investment.Amount,
		Type:      string(investment.Type),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	investment.CreatedAt = m.CreatedAt
	investment.UpdatedAt = m.UpdatedAt
	return nil
}

// ListByAccount returns the account's investments, oldest first
func (r *InvestmentRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entities.Investment, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Investment
	err := db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	investments := make([]*entities.Investment, 0, len(ms))
	for i := range ms {
		m := ms[i]
		e := &entities.Investment{
			ID:        m.ID,
			AccountID: m.AccountID,
			ForMonth:  m.ForMonth,
			Amount:    m.Amount,
			Type:      entities.InvestmentType(m.Type),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		}
		if m.DeletedAt.Valid {
			t := m.DeletedAt.Time
			e.DeletedAt = &t
		}
		investments = append(investments, e)
	}
	return investments, nil
}

// SoftDelete soft deletes an investment row. Kept for data retention
// workflows only; no API route mutates investments after creation.
func (r *InvestmentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Investment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
