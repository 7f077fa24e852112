package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Investor struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	UID              string    `gorm:"column:uid;type:varchar(255);not null;uniqueIndex"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Nickname         *string   `gorm:"type:varchar(255)"`
	Email            string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PermanentAddress string    `gorm:"type:text;not null"`
	CurrentAddress   string    `gorm:"type:text;not null"`
	PersonalInfo     datatypes.JSON
	Mobile           string  `gorm:"type:varchar(20);not null"`
	EmergencyMobile  *string `gorm:"type:varchar(20)"`
	Status           string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
}
