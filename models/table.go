package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

type Table struct {
	ID           string    `gorm:"type:varchar(26);primaryKey"`
	Number       int       `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	DomoticaCode *string   `gorm:"type:varchar(100);uniqueIndex"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.NewID()
	}
	return nil
}
