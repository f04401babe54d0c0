package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the indexes AutoMigrate cannot express
func MigrateConstraints(db *gorm.DB) error {
	// One ledger entry per reservation and user
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_reservation_per_user
		ON reservation_records (user_id, reservation_id);
	`).Error
	if err != nil {
		return err
	}

	// Newest first listing of "my reservations"
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservation_records_user_created
		ON reservation_records (user_id, created_at DESC);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
