package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncBatch records one Domotica snapshot import and what it changed.
type SyncBatch struct {
	ID                  string    `gorm:"type:varchar(36);primaryKey"`
	Source              string    `gorm:"type:varchar(100);not null"`
	TablesCreated       int       `gorm:"not null;default:0"`
	TablesUpdated       int       `gorm:"not null;default:0"`
	ProductsCreated     int       `gorm:"not null;default:0"`
	ProductsUpdated     int       `gorm:"not null;default:0"`
	ProductsDeactivated int       `gorm:"not null;default:0"`
	ReceivedAt          time.Time `gorm:"not null"`
	CreatedAt           time.Time `gorm:"not null"`
}

func (b *SyncBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
