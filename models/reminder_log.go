// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records one reminder delivery attempt.
type ReminderLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointmentId"`
	ClientID      uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	Recipient     string    `gorm:"type:varchar(255)" json:"recipient"`
	Subject       string    `gorm:"type:varchar(255)" json:"subject"`
	Status        string    `gorm:"type:varchar(20)" json:"status"`
	ErrorMessage  string    `gorm:"type:text" json:"errorMessage"`
	Channel       string    `gorm:"type:varchar(20)" json:"channel"`
	SentAt        time.Time `gorm:"index" json:"sentAt"`
}

const (
	ReminderSent   = "sent"
	ReminderFailed = "failed"
)

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
