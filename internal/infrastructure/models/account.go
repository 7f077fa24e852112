package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvestorID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Amount     string    `gorm:"type:decimal(14,2);not null;default:0"`
	IsActive   bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Investor *Investor `gorm:"foreignKey:InvestorID"`
}
