package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"invest-desk.backend/internal/domain/entities"
	domainerrors "invest-desk.backend/internal/domain/errors"
	"invest-desk.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m, err := r.toModel(payment)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment by ID with its investor preloaded
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Investor").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// List returns payments matching the filters plus the unpaginated total.
// Search covers the paying investor's name/email.
func (r *PaymentRepository) List(ctx context.Context, params entities.ListPaymentsParams, limit, offset int) ([]*entities.Payment, int64, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN investors ON investors.id = payments.investor_id")

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("investors.name LIKE ? OR investors.email LIKE ?", like, like)
	}
	switch params.IsAdjusted {
	case "is_adjusted":
		q = q.Where("payments.is_adjusted = ?", true)
	case "not_adjusted":
		q = q.Where("payments.is_adjusted = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(params.Sort, params.Direction, map[string]string{
		"investor":    "investors.name",
		"is_adjusted": "payments.is_adjusted",
		"created_at":  "payments.created_at",
	}))

	var ms []models.Payment
	if err := q.Select("payments.*").Preload("Investor").
		Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	payments := make([]*entities.Payment, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, e)
	}
	return payments, total, nil
}

// Update replaces the editable payment fields. Logs and the adjusted flag
// have their own paths.
func (r *PaymentRepository) Update(ctx context.Context, payment *entities.Payment) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]interface{}{
			"amount":      payment.Amount,
			"investor_id": payment.InvestorID,
			"remarks":     payment.Remarks.Ptr(),
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

// UpdateAdjusted sets the manual is_adjusted flag
func (r *PaymentRepository) UpdateAdjusted(ctx context.Context, id uuid.UUID, adjusted bool) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_adjusted": adjusted, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a payment
func (r *PaymentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// AppendLogs writes the combined logs sequence back, guarded by the log
// version the caller read. A concurrent append bumps the version first and
// the late writer gets ErrConflict, so no update is ever lost.
func (r *PaymentRepository) AppendLogs(ctx context.Context, id uuid.UUID, logs []entities.AllocationLine, expectedVersion int) error {
	raw, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND log_version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"logs":        datatypes.JSON(raw),
			"log_version": expectedVersion + 1,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

// SumAmount totals all live payment amounts
func (r *PaymentRepository) SumAmount(ctx context.Context) (float64, error) {
	var total float64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// MonthlyTotals groups live payment amounts by calendar month, ascending.
func (r *PaymentRepository) MonthlyTotals(ctx context.Context) ([]entities.MonthlyTotal, error) {
	db := GetDB(ctx, r.db)
	monthExpr := "to_char(created_at, 'YYYY-MM')"
	if db.Dialector.Name() == "sqlite" {
		monthExpr = "strftime('%Y-%m', created_at)"
	}

	var totals []entities.MonthlyTotal
	err := db.WithContext(ctx).Model(&models.Payment{}).
		Select(monthExpr + " AS month, SUM(amount) AS total").
		Group("month").
		Order("month ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *PaymentRepository) toModel(e *entities.Payment) (*models.Payment, error) {
	m := &models.Payment{
		ID:         e.ID,
		InvestorID: e.InvestorID,
		Amount:     e.Amount,
		Remarks:    e.Remarks.Ptr(),
		CreatedBy:  e.CreatedBy,
		IsAdjusted: e.IsAdjusted,
		LogVersion: e.LogVersion,
	}
	if len(e.Logs) > 0 {
		raw, err := json.Marshal(e.Logs)
		if err != nil {
			return nil, err
		}
		m.Logs = datatypes.JSON(raw)
	}
	return m, nil
}

func (r *PaymentRepository) toEntity(m *models.Payment) (*entities.Payment, error) {
	e := &entities.Payment{
		ID:         m.ID,
		InvestorID: m.InvestorID,
		Amount:     m.Amount,
		Remarks:    null.StringFromPtr(m.Remarks),
		CreatedBy:  m.CreatedBy,
		IsAdjusted: m.IsAdjusted,
		Logs:       []entities.AllocationLine{},
		LogVersion: m.LogVersion,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	// Absent or null logs read as an empty sequence.
	if len(m.Logs) > 0 && string(m.Logs) != "null" {
		if err := json.Unmarshal(m.Logs, &e.Logs); err != nil {
			return nil, err
		}
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
	return e, nil
}
