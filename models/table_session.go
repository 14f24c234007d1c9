package models

import (
	"time"

	"gorm.io/gorm"

	"restopos/utils"
)

// Session states. Finalizada marks expiry-driven closure, cerrada a manual
// close; both are terminal.
const (
	SessionActive    = "activa"
	SessionInactive  = "inactiva"
	SessionClosed    = "cerrada"
	SessionFinalized = "finalizada"
)

// TableSession is the shared login context for one table. Every guest at
// the table acts under the same Token until the session expires or is closed.
type TableSession struct {
	ID              string     `gorm:"type:varchar(26);primaryKey"`
	TableID         string     `gorm:"type:varchar(26);not null;index"`
	CreatedByID     string     `gorm:"type:varchar(26);not null"`
	Token           string     `gorm:"type:varchar(26);unique;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'activa';index"`
	StartedAt       time.Time  `gorm:"not null"`
	EndedAt         *time.Time
	DurationMinutes int        `gorm:"not null;default:120"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

func (s *TableSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	return nil
}

// ExpiresAt derives the end of the session window from its start.
func (s *TableSession) ExpiresAt() time.Time {
	return s.StartedAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Expired reports whether the session can no longer be joined. A session
// whose stored status is still activa counts as expired once its window
// has elapsed: expiry is derived at read time, never trusted from the
// status column alone.
func (s *TableSession) Expired(now time.Time) bool {
	if s.Status == SessionFinalized || s.Status == SessionClosed {
		return true
	}
	return now.After(s.ExpiresAt())
}
