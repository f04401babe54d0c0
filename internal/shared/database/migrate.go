package database

import (
	"ticketfront/internal/history"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&history.ReservationRecord{},
	); err != nil {
		return err
	}
	return MigrateConstraints(db)
}
