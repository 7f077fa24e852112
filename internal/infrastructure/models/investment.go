package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Investment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	ForMonth  string    `gorm:"type:varchar(7);not null"`
	Amount    string    `gorm:"type:decimal(14,2);not null;default:0"`
	Type      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Account *Account `gorm:"foreignKey:AccountID"`
}
