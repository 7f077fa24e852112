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

// InvestorRepository implements investor data operations
type InvestorRepository struct {
	db *gorm.DB
}

// NewInvestorRepository creates a new investor repository
func NewInvestorRepository(db *gorm.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// Create creates a new investor
func (r *InvestorRepository) Create(ctx context.Context, investor *entities.Investor) error {
	if investor.ID == uuid.Nil {
		investor.ID = uuid.New()
	}
	m, err := r.toModel(investor)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	investor.CreatedAt = m.CreatedAt
	investor.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an investor by ID with its owning user preloaded
func (r *InvestorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investor, error) {
	var m models.Investor
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// List returns investors matching the filters plus the unpaginated total.
func (r *InvestorRepository) List(ctx context.Context, params entities.ListInvestorsParams, limit, offset int) ([]*entities.Investor, int64, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Investor{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR uid LIKE ?", like, like, like)
	}
	if params.Status != "" {
		q = q.Where("status = ?", params.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(params.Sort, params.Direction, map[string]string{
		"name":       "name",
		"uid":        "uid",
		"email":      "email",
		"status":     "status",
		"created_at": "created_at",
	}))

	var ms []models.Investor
	if err := q.Preload("User").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	investors := make([]*entities.Investor, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		investors = append(investors, e)
	}
	return investors, total, nil
}

// Update replaces the stored investor fields
func (r *InvestorRepository) Update(ctx context.Context, investor *entities.Investor) error {
	personalInfo, err := marshalPersonalInfo(investor.PersonalInfo)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Investor{}).
		Where("id = ?", investor.ID).
		Updates(map[string]interface{}{
			"uid":               investor.UID,
			"name":              investor.Name,
			"nickname":          investor.Nickname.Ptr(),
			"email":             investor.Email,
			"permanent_address": investor.PermanentAddress,
			"current_address":   investor.CurrentAddress,
			"personal_info":     personalInfo,
			"mobile":            investor.Mobile,
			"emergency_mobile":  investor.EmergencyMobile.Ptr(),
			"status":            string(investor.Status),
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the investor status
func (r *InvestorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.InvestorStatus) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Investor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes an investor
func (r *InvestorRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Investor{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ExistsByUID reports whether another investor holds the uid
func (r *InvestorRepository) ExistsByUID(ctx context.Context, uid string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "uid = ?", uid, excludeID)
}

// ExistsByEmail reports whether another investor holds the email
func (r *InvestorRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

// Count counts live investors
func (r *InvestorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Investor{}).Count(&count).Error
	return count, err
}

func (r *InvestorRepository) exists(ctx context.Context, cond string, value string, excludeID uuid.UUID) (bool, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Investor{}).Where(cond, value)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InvestorRepository) toModel(e *entities.Investor) (*models.Investor, error) {
	personalInfo, err := marshalPersonalInfo(e.PersonalInfo)
	if err != nil {
		return nil, err
	}
	return &models.Investor{
		ID:               e.ID,
		UserID:           e.UserID,
		UID:              e.UID,
		Name:             e.Name,
		Nickname:         e.Nickname.Ptr(),
		Email:            e.Email,
		PermanentAddress: e.PermanentAddress,
		CurrentAddress:   e.CurrentAddress,
		PersonalInfo:     personalInfo,
		Mobile:           e.Mobile,
		EmergencyMobile:  e.EmergencyMobile.Ptr(),
		Status:           string(e.Status),
	}, nil
}

func (r *InvestorRepository) toEntity(m *models.Investor) (*entities.Investor, error) {
	e := &entities.Investor{
		ID:               m.ID,
		UserID:           m.UserID,
		UID:              m.UID,
		Name:             m.Name,
		Nickname:         null.StringFromPtr(m.Nickname),
		Email:            m.Email,
		PermanentAddress: m.PermanentAddress,
		CurrentAddress:   m.CurrentAddress,
		Mobile:           m.Mobile,
		EmergencyMobile:  null.StringFromPtr(m.EmergencyMobile),
		Status:           entities.InvestorStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if len(m.PersonalInfo) > 0 {
		var info entities.PersonalInfo
		if err := json.Unmarshal(m.PersonalInfo, &info); err != nil {
			return nil, err
		}
		if !info.IsZero() {
			e.PersonalInfo = &info
		}
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		e.DeletedAt = &t
	}
	if m.User != nil {
		userRepo := UserRepository{}
		e.User = userRepo.toEntity(m.User)
	}
	return e, nil
}

func marshalPersonalInfo(info *entities.PersonalInfo) (datatypes.JSON, error) {
	if info == nil || info.IsZero() {
		return nil, nil
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
