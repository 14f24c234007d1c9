package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

type Category struct {
	ID        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (cat *Category) BeforeCreate(tx *gorm.DB) error {
	if cat.ID == "" {
		cat.ID = utils.NewID()
	}
	return nil
}
