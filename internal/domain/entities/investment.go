package entities

import (
	"time"

	"github.com/google/uuid"
)

// InvestmentType represents investment type
type InvestmentType string

const (
	InvestmentTypeRegular InvestmentType = "regular"
	InvestmentTypeEid     InvestmentType = "eid"
	InvestmentTypeOthers  InvestmentType = "others"
)

// InvestmentTypes returns every valid type value.
func InvestmentTypes() []InvestmentType {
	return []InvestmentType{InvestmentTypeRegular, InvestmentTypeEid, InvestmentTypeOthers}
}

// ValidInvestmentType reports whether s is one of the enumerated types.
func ValidInvestmentType(s string) bool {
	switch InvestmentType(s) {
	case InvestmentTypeRegular, InvestmentTypeEid, InvestmentTypeOthers:
		return true
	}
	return false
}

// Investment represents a single dated, typed allocation of part of a
// payment to one account. Rows are created only by the allocation workflow
// and are immutable afterwards.
type Investment struct {
	ID        uuid.UUID      `json:"id"`
	AccountID uuid.UUID      `json:"accountId"`
	ForMonth  string         `json:"forMonth"`
	Amount    string         `json:"amount"`
	Type      InvestmentType `json:"type"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt *time.Time     `json:"-"`
}

// BulkInvestmentInput is the allocation workflow request body.
type BulkInvestmentInput struct {
	Investments []AllocationLineInput `json:"investments" binding:"required"`
}

// AllocationLineInput is one submitted line before validation.
type AllocationLineInput struct {
	AccountID string `json:"accountId" binding:"required"`
	ForMonth  string `json:"forMonth" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Type      string `json:"type" binding:"required"`
}
