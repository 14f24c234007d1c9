package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

// ProductOption is an optional add-on for a product (e.g. extra cheese),
// priced as a delta on the product price.
type ProductOption struct {
	ID         string    `gorm:"type:varchar(26);primaryKey"`
	ProductID  string    `gorm:"type:varchar(26);not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	ExtraPrice float64   `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (o *ProductOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = utils.NewID()
	}
	return nil
}
