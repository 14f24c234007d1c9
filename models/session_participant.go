package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

// SessionParticipant joins a Customer to a TableSession. One row per
// (session, customer) pair; rejoining is a no-op at the service layer.
type SessionParticipant struct {
	ID         string       `gorm:"type:varchar(26);primaryKey"`
	SessionID  string       `gorm:"type:varchar(26);not null;uniqueIndex:idx_session_customer"`
	Session    TableSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CustomerID string       `gorm:"type:varchar(26);not null;uniqueIndex:idx_session_customer"`
	Customer   Customer     `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	JoinedAt   time.Time    `gorm:"not null"`
}

func (p *SessionParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return nil
}
