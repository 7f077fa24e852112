package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvestorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     string    `gorm:"type:decimal(14,2);not null;default:0"`
	Remarks    *string   `gorm:"type:text"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
	IsAdjusted bool      `gorm:"not null;default:false;index"`
	Logs       datatypes.JSON
	// LogVersion guards the read-modify-write of Logs in the allocation
	// workflow; every append must match the version it read.
	LogVersion int `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Investor *Investor `gorm:"foreignKey:InvestorID"`
}
