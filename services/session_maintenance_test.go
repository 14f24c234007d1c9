package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/utils"
)

func seedSession(t *testing.T, db *gorm.DB, tableID string, startedAt time.Time) models.TableSession {
	t.Helper()
	session := models.TableSession{
		TableID:         tableID,
		CreatedByID:     "seed",
		Token:           utils.NewSessionToken(),
		Status:          models.SessionActive,
		StartedAt:       startedAt,
		DurationMinutes: 120,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func TestRepairDuplicateActives(t *testing.T) {
	db := setupLoginTestDB(t)
	table := seedTable(t, db, 1, true)

	now := time.Now()
	oldest := seedSession(t, db, table.ID, now.Add(-30*time.Minute))
	middle := seedSession(t, db, table.ID, now.Add(-20*time.Minute))
	newest := seedSession(t, db, table.ID, now.Add(-10*time.Minute))

	svc := NewSessionMaintenanceService(db)
	report, err := svc.RepairDuplicateActives()
	assert.NoError(t, err)
	assert.Equal(t, 1, report.TablesProcessed)
	assert.Equal(t, 2, report.SessionsFinalized)

	var survivor models.TableSession
	assert.NoError(t, db.First(&survivor, "id = ?", newest.ID).Error)
	assert.Equal(t, models.SessionActive, survivor.Status)

	for _, id := range []string{oldest.ID, middle.ID} {
		var finalized models.TableSession
		assert.NoError(t, db.First(&finalized, "id = ?", id).Error)
		assert.Equal(t, models.SessionFinalized, finalized.Status)
		assert.NotNil(t, finalized.EndedAt)
	}
}

func TestRepairDuplicateActivesIsIdempotent(t *testing.T) {
	db := setupLoginTestDB(t)
	table := seedTable(t, db, 2, true)

	now := time.Now()
	seedSession(t, db, table.ID, now.Add(-20*time.Minute))
	seedSession(t, db, table.ID, now.Add(-10*time.Minute))

	svc := NewSessionMaintenanceService(db)
	first, err := svc.RepairDuplicateActives()
	assert.NoError(t, err)
	assert.Equal(t, 1, first.SessionsFinalized)

	second, err := svc.RepairDuplicateActives()
	assert.NoError(t, err)
	assert.Equal(t, 0, second.SessionsFinalized)
	assert.Equal(t, 0, second.TablesProcessed)
}

func TestSweepExpired(t *testing.T) {
	db := setupLoginTestDB(t)
	tableA := seedTable(t, db, 3, true)
	tableB := seedTable(t, db, 4, true)

	now := time.Now()
	expired := seedSession(t, db, tableA.ID, now.Add(-3*time.Hour))
	valid := seedSession(t, db, tableB.ID, now.Add(-10*time.Minute))

	svc := NewSessionMaintenanceService(db)
	finalized, err := svc.SweepExpired()
	assert.NoError(t, err)
	assert.Equal(t, 1, finalized)

	var swept models.TableSession
	assert.NoError(t, db.First(&swept, "id = ?", expired.ID).Error)
	assert.Equal(t, models.SessionFinalized, swept.Status)
	assert.NotNil(t, swept.EndedAt)

	var untouched models.TableSession
	assert.NoError(t, db.First(&untouched, "id = ?", valid.ID).Error)
	assert.Equal(t, models.SessionActive, untouched.Status)

	// running again finds nothing left to finalize
	finalized, err = svc.SweepExpired()
	assert.NoError(t, err)
	assert.Equal(t, 0, finalized)
}

func TestSessionEndAfterStartInvariant(t *testing.T) {
	db := setupLoginTestDB(t)
	table := seedTable(t, db, 5, true)
	session := seedSession(t, db, table.ID, time.Now().Add(-3*time.Hour))

	svc := NewSessionMaintenanceService(db)
	_, err := svc.SweepExpired()
	assert.NoError(t, err)

	var swept models.TableSession
	assert.NoError(t, db.First(&swept, "id = ?", session.ID).Error)
	if assert.NotNil(t, swept.EndedAt) {
		assert.True(t, !swept.EndedAt.Before(swept.StartedAt))
	}
}
