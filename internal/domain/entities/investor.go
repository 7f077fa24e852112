package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InvestorStatus represents investor status
type InvestorStatus string

const (
	InvestorStatusPending InvestorStatus = "pending"
	InvestorStatusActive  InvestorStatus = "active"
)

// InvestorStatuses returns every valid status value.
func InvestorStatuses() []InvestorStatus {
	return []InvestorStatus{InvestorStatusPending, InvestorStatusActive}
}

// PersonalInfo is the structured document attached to an investor. Known
// fields are typed; Extra keeps arbitrary key-value pairs submitted by the
// office staff without losing them on round-trips.
type PersonalInfo struct {
	DateOfBirth string            `json:"dateOfBirth,omitempty"`
	Nationality string            `json:"nationality,omitempty"`
	Occupation  string            `json:"occupation,omitempty"`
	IncomeRange string            `json:"incomeRange,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// IsZero reports whether no personal info was provided at all.
func (p PersonalInfo) IsZero() bool {
	return p.DateOfBirth == "" && p.Nationality == "" && p.Occupation == "" &&
		p.IncomeRange == "" && len(p.Extra) == 0
}

// Investor represents an investor entity
type Investor struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"userId"`
	UID              string         `json:"uid"`
	Name             string         `json:"name"`
	Nickname         null.String    `json:"nickname,omitempty"`
	Email            string         `json:"email"`
	PermanentAddress string         `json:"permanentAddress"`
	CurrentAddress   string         `json:"currentAddress"`
	PersonalInfo     *PersonalInfo  `json:"personalInfo,omitempty"`
	Mobile           string         `json:"mobile"`
	EmergencyMobile  null.String    `json:"emergencyMobile,omitempty"`
	Status           InvestorStatus `json:"status"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        *time.Time     `json:"-"`

	// Joins
	User     *User      `json:"user,omitempty"`
	Accounts []*Account `json:"accounts,omitempty"`
}

// IsActive reports whether the investor is active.
func (i *Investor) IsActive() bool {
	return i.Status == InvestorStatusActive
}

// InvestorInput represents input for creating or updating an investor
type InvestorInput struct {
	UID              string        `json:"uid" binding:"required"`
	Name             string        `json:"name" binding:"required"`
	Nickname         string        `json:"nickname"`
	Email            string        `json:"email" binding:"required"`
	PermanentAddress string        `json:"permanentAddress" binding:"required"`
	CurrentAddress   string        `json:"currentAddress" binding:"required"`
	PersonalInfo     *PersonalInfo `json:"personalInfo"`
	Mobile           string        `json:"mobile" binding:"required"`
	EmergencyMobile  string        `json:"emergencyMobile"`
	Status           string        `json:"status" binding:"required"`
}

// InvestorWithUserInput creates a fresh user and an investor owned by it in
// one transaction.
type InvestorWithUserInput struct {
	UserName             string `json:"userName" binding:"required"`
	UserEmail            string `json:"userEmail" binding:"required"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	UserRole             string `json:"userRole" binding:"required"`

	InvestorInput
}

// ListInvestorsParams are the accepted list filters for investors.
type ListInvestorsParams struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
	Page      int    `form:"page"`
}
