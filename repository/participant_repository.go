package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"restopos/models"
)

type ParticipantRepository struct {
	DB *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

func (r *ParticipantRepository) Exists(sessionID, customerID string) (bool, error) {
	var participant models.SessionParticipant
	err := r.DB.First(&participant, "session_id = ? AND customer_id = ?", sessionID, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ParticipantRepository) Add(sessionID, customerID string, joinedAt time.Time) error {
	participant := models.SessionParticipant{
		SessionID:  sessionID,
		CustomerID: customerID,
		JoinedAt:   joinedAt,
	}
	return r.DB.Create(&participant).Error
}

// ForSession lists the participant rows of one session with their guests
// preloaded, oldest join first.
func (r *ParticipantRepository) ForSession(sessionID string) ([]models.SessionParticipant, error) {
	var participants []models.SessionParticipant
	err := r.DB.
		Preload("Customer").
		Where("session_id = ?", sessionID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}
