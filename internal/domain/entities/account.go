package entities

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a named sub-ledger under an investor
type Account struct {
	ID         uuid.UUID  `json:"id"`
	InvestorID uuid.UUID  `json:"investorId"`
	Name       string     `json:"name"`
	Amount     string     `json:"amount"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"-"`

	// Joins
	Investor *Investor `json:"investor,omitempty"`

	// TotalInvested is the sum of investment amounts recorded against the
	// account; populated on list/detail reads, never persisted.
	TotalInvested string `json:"totalInvested,omitempty"`
}

// AccountInput represents input for creating or updating an account
type AccountInput struct {
	Name       string `json:"name" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
	InvestorID string `json:"investorId" binding:"required"`
}

// ListAccountsParams are the accepted list filters for accounts.
type ListAccountsParams struct {
	Search    string `form:"search"`
	Verified  string `form:"verified"`
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
	Page      int    `form:"page"`
}
