package database

import (
	"gorm.io/gorm"

	"restopos/models"
)

// AutoMigrate creates/updates every table the application owns.
//
// Deliberately absent: a unique index on (table_id) for active sessions.
// The login flow is read-then-write and can briefly leave two active
// sessions on one table; the maintenance sweep repairs that instead of the
// database rejecting it.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Table{},
		&models.TableSession{},
		&models.SessionParticipant{},
		&models.Category{},
		&models.Product{},
		&models.ProductOption{},
		&models.Allergen{},
		&models.SyncBatch{},
	)
}
