package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

// Customer is a guest identified only by email. No password: the record
// exists so that several logins with the same email map to one identity.
type Customer struct {
	ID           string    `gorm:"type:varchar(26);primaryKey"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	LastAccessAt time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (cu *Customer) BeforeCreate(tx *gorm.DB) error {
	if cu.ID == "" {
		cu.ID = utils.NewID()
	}
	return nil
}
