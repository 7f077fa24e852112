package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/infrastructure/models"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	m := r.toModel(account)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an account by ID with its investor and invested total
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Investor").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	e := r.toEntity(&m)

	var invested float64
	err := db.WithContext(ctx).Model(&models.Investment{}).
		Where("account_id = ? AND deleted_at IS NULL", id).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&invested).Error
	if err != nil {
		return nil, err
	}
	e.TotalInvested = strconv.FormatFloat(invested, 'f', 2, 64)
	return e, nil
}

// List returns accounts matching the filters plus the unpaginated total.
// Search covers the account name and the owning investor's name/email.
func (r *AccountRepository) List(ctx context.Context, params entities.ListAccountsParams, limit, offset int) ([]*entities.Account, int64, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Account{}).
		Joins("JOIN investors ON investors.id = accounts.investor_id")

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("accounts.name LIKE ? OR investors.name LIKE ? OR investors.email LIKE ?", like, like, like)
	}
	switch params.Verified {
	case "verified":
		q = q.Where("accounts.is_active = ?", true)
	case "unverified":
		q = q.Where("accounts.is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(params.Sort, params.Direction, map[string]string{
		"name":       "accounts.name",
		"investor":   "investors.name",
		"is_active":  "accounts.is_active",
		"created_at": "accounts.created_at",
	}))

	var ms []models.Account
	if err := q.Select("accounts.*").Preload("Investor").
		Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]*entities.Account, 0, len(ms))
	for i := range ms {
		accounts = append(accounts, r.toEntity(&ms[i]))
	}
	if err := r.fillInvestedTotals(ctx, accounts); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// ListActiveByInvestor returns the investor's active accounts, the eligible
// targets for the allocation workflow.
func (r *AccountRepository) ListActiveByInvestor(ctx context.Context, investorID uuid.UUID) ([]*entities.Account, error) {
	db := GetDB(ctx, r.db)
	var ms []models.Account
	err := db.WithContext(ctx).
		Where("investor_id = ? AND is_active = ?", investorID, true).
		Order("name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	accounts := make([]*entities.Account, 0, len(ms))
	for i := range ms {
		accounts = append(accounts, r.toEntity(&ms[i]))
	}
	return accounts, nil
}

// Update replaces the stored account fields
func (r *AccountRepository) Update(ctx context.Context, account *entities.Account) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"name":        account.Name,
			"amount":      account.Amount,
			"investor_id": account.InvestorID,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateActive sets the is_active flag
func (r *AccountRepository) UpdateActive(ctx context.Context, id uuid.UUID, active bool) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes an account
func (r *AccountRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a live account with the id exists
func (r *AccountRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	db := GetDB(ctx, r.db)
	var count int64
	if err := db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts live accounts
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error
	return count, err
}

func (r *AccountRepository) fillInvestedTotals(ctx context.Context, accounts []*entities.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	type accountSum struct {
		AccountID uuid.UUID
		Total     float64
	}
	var sums []accountSum
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Investment{}).
		Where("account_id IN ? AND deleted_at IS NULL", ids).
		Select("account_id, COALESCE(SUM(amount), 0) AS total").
		Group("account_id").
		Scan(&sums).Error
	if err != nil {
		return err
	}

	totals := make(map[uuid.UUID]float64, len(sums))
	for _, s := range sums {
		totals[s.AccountID] = s.Total
	}
	for _, a := range accounts {
		a.TotalInvested = strconv.FormatFloat(totals[a.ID], 'f', 2, 64)
	}
	return nil
}

func (r *AccountRepository) toModel(e *entities.Account) *models.Account {
	return &models.Account{
		ID:         e.ID,
		InvestorID: e.InvestorID,
		Name:       e.Name,
		Amount:     e.Amount,
		IsActive:   e.IsActive,
	}
}

func (r *AccountRepository) toEntity(m *models.Account) *entities.Account {
	e := &entities.Account{
		ID:         m.ID,
		InvestorID: m.InvestorID,
		Name:       m.Name,
		Amount:     m.Amount,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		e.DeletedAt = &t
	}
	if m.Investor != nil {
		e.Investor = &entities.Investor{
			ID:     m.Investor.ID,
			UserID: m.Investor.UserID,
			UID:    m.Investor.UID,
			Name:   m.Investor.Name,
			Email:  m.Investor.Email,
			Status: entities.InvestorStatus(m.Investor.Status),
		}
	}
	return e
}
