package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AllocationLine is one proposed allocation of part of a payment to an
// account. The same shape is appended verbatim to the payment's log.
type AllocationLine struct {
	AccountID uuid.UUID `json:"accountId"`
	ForMonth  string    `json:"forMonth"`
	Amount    string    `json:"amount"`
	Type      string    `json:"type"`
}

// Payment represents a lump sum received from an investor
type Payment struct {
	ID         uuid.UUID   `json:"id"`
	InvestorID uuid.UUID   `json:"investorId"`
	Amount     string      `json:"amount"`
	Remarks    null.String `json:"remarks,omitempty"`
	CreatedBy  uuid.UUID   `json:"createdBy"`
	IsAdjusted bool        `json:"isAdjusted"`
	// Logs is the ordered append-only sequence of allocation lines recorded
	// against this payment. Only the allocation workflow grows it.
	Logs []AllocationLine `json:"logs"`
	// LogVersion increments on every logs write and backs the optimistic
	// concurrency check in the allocation workflow.
	LogVersion int        `json:"-"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"-"`

	// Joins
	Investor *Investor `json:"investor,omitempty"`
}

// PaymentInput represents input for creating or updating a payment
type PaymentInput struct {
	Amount     string `json:"amount" binding:"required"`
	InvestorID string `json:"investorId" binding:"required"`
	Remarks    string `json:"remarks"`
}

// ListPaymentsParams are the accepted list filters for payments.
type ListPaymentsParams struct {
	Search     string `form:"search"`
	IsAdjusted string `form:"is_adjusted"`
	Sort       string `form:"sort"`
	Direction  string `form:"direction"`
	Page       int    `form:"page"`
}
