package repository

import (
	"time"

	"gorm.io/gorm"

	"restopos/models"
)

// SessionRepository owns every read/write against table_sessions. Each
// method names exactly what it fetches; nothing is lazy-loaded.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *models.TableSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) ByID(id string) (*models.TableSession, error) {
	var session models.TableSession
	if err := r.DB.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ByToken(token string) (*models.TableSession, error) {
	var session models.TableSession
	if err := r.DB.First(&session, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ActiveForTable returns the active session for a table. When the known
// duplicate anomaly has produced more than one, the most recently started
// wins.
func (r *SessionRepository) ActiveForTable(tableID string) (*models.TableSession, error) {
	var session models.TableSession
	err := r.DB.
		Where("table_id = ? AND status = ?", tableID, models.SessionActive).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ActivesForTable returns every active session for a table, newest first.
func (r *SessionRepository) ActivesForTable(tableID string) ([]models.TableSession, error) {
	var sessions []models.TableSession
	err := r.DB.
		Where("table_id = ? AND status = ?", tableID, models.SessionActive).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// TablesWithDuplicateActives lists table ids holding more than one active
// session.
func (r *SessionRepository) TablesWithDuplicateActives() ([]string, error) {
	var tableIDs []string
	err := r.DB.Model(&models.TableSession{}).
		Where("status = ?", models.SessionActive).
		Group("table_id").
		Having("COUNT(*) > 1").
		Pluck("table_id", &tableIDs).Error
	return tableIDs, err
}

func (r *SessionRepository) AllActive() ([]models.TableSession, error) {
	var sessions []models.TableSession
	err := r.DB.Where("status = ?", models.SessionActive).Find(&sessions).Error
	return sessions, err
}

// Close moves a session to a terminal status and stamps its end time.
func (r *SessionRepository) Close(id string, status string, endedAt time.Time) error {
	return r.DB.Model(&models.TableSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   status,
			"ended_at": endedAt,
		}).Error
}

func (r *SessionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.DB.Model(&models.TableSession{}).Where("id = ?", id).Updates(fields).Error
}

type SessionFilter struct {
	TableID string
	Status  string
	Limit   int
	Offset  int
}

func (r *SessionRepository) List(filter SessionFilter) ([]models.TableSession, int64, error) {
	q := r.DB.Model(&models.TableSession{})
	if filter.TableID != "" {
		q = q.Where("table_id = ?", filter.TableID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var sessions []models.TableSession
	if err := q.Order("started_at DESC").Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// Delete removes a session and, through the FK cascade, its participant rows.
func (r *SessionRepository) Delete(id string) error {
	if err := r.DB.Where("session_id = ?", id).Delete(&models.SessionParticipant{}).Error; err != nil {
		return err
	}
	return r.DB.Delete(&models.TableSession{}, "id = ?", id).Error
}
