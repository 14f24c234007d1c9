package services

import (
	"time"

	"gorm.io/gorm"

	"restopos/models"
	"restopos/repository"
	"restopos/utils"
)

// SessionMaintenanceService repairs the anomalies the login path tolerates:
// tables with more than one active session and active sessions whose window
// has already elapsed. Both operations are idempotent.
type SessionMaintenanceService struct {
	sessions *repository.SessionRepository
}

func NewSessionMaintenanceService(db *gorm.DB) *SessionMaintenanceService {
	return &SessionMaintenanceService{sessions: repository.NewSessionRepository(db)}
}

type RepairReport struct {
	TablesProcessed   int `json:"tables_processed"`
	SessionsFinalized int `json:"sessions_finalized"`
}

// RepairDuplicateActives keeps, per affected table, the most recently
// started active session and finalizes the rest.
func (s *SessionMaintenanceService) RepairDuplicateActives() (RepairReport, error) {
	var report RepairReport

	tableIDs, err := s.sessions.TablesWithDuplicateActives()
	if err != nil {
		return report, err
	}

	now := time.Now()
	for _, tableID := range tableIDs {
		actives, err := s.sessions.ActivesForTable(tableID)
		if err != nil {
			return report, err
		}
		if len(actives) < 2 {
			continue
		}
		report.TablesProcessed++
		// actives is newest-first: index 0 survives
		for _, dup := range actives[1:] {
			if err := s.sessions.Close(dup.ID, models.SessionFinalized, now); err != nil {
				return report, err
			}
			report.SessionsFinalized++
		}
	}

	if report.SessionsFinalized > 0 {
		utils.InfoLogger.Printf("Repaired %d duplicate sessions across %d tables",
			report.SessionsFinalized, report.TablesProcessed)
	}
	return report, nil
}

// SweepExpired finalizes every active session whose derived expiry has
// passed and returns how many it closed.
func (s *SessionMaintenanceService) SweepExpired() (int, error) {
	actives, err := s.sessions.AllActive()
	if err != nil {
		return 0, err
	}

	now := time.Now()
	finalized := 0
	for _, session := range actives {
		if !session.Expired(now) {
			continue
		}
		if err := s.sessions.Close(session.ID, models.SessionFinalized, now); err != nil {
			return finalized, err
		}
		finalized++
	}

	if finalized > 0 {
		utils.InfoLogger.Printf("Expiry sweep finalized %d sessions", finalized)
	}
	return finalized, nil
}

// Sweeper runs the expiry sweep on an interval in the background.
type Sweeper struct {
	Maintenance *SessionMaintenanceService
	Interval    time.Duration
	StopChan    chan struct{}
}

func NewSweeper(db *gorm.DB, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{
		Maintenance: NewSessionMaintenanceService(db),
		Interval:    interval,
		StopChan:    make(chan struct{}),
	}
}

func (sw *Sweeper) Start() {
	go func() {
		ticker := time.NewTicker(sw.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := sw.Maintenance.SweepExpired(); err != nil {
					utils.ErrorLogger.Printf("Expiry sweep failed: %v", err)
				}
			case <-sw.StopChan:
				return
			}
		}
	}()
}

func (sw *Sweeper) Stop() {
	close(sw.StopChan)
}
