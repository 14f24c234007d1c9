package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

type Allergen struct {
	ID        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (a *Allergen) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.NewID()
	}
	return nil
}
