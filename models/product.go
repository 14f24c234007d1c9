package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

type Product struct {
	ID           string          `gorm:"type:varchar(26);primaryKey"`
	CategoryID   string          `gorm:"type:varchar(26);not null"`
	Category     Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        float64         `gorm:"type:decimal(10,2);not null"`
	Description  string          `gorm:"type:text"`
	DomoticaCode *string         `gorm:"type:varchar(100);uniqueIndex"`
	Active       bool            `gorm:"not null;default:true"`
	Options      []ProductOption `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Allergens    []Allergen      `gorm:"many2many:product_allergens;"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return nil
}
