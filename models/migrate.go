package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the salon schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Service{},
		&Employee{},
		&Client{},
		&Appointment{},
		&Product{},
		&Review{},
		&ReminderLog{},
	)
}
