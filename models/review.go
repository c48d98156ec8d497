package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_appointment_client" json:"appointmentId"`
	ClientID      *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_appointment_client;index" json:"clientId"`
	Rating        int        `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5;index" json:"rating"`
	Comment       string     `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Client      *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// ClientUser returns the user that owns the reviewing client.
// Client must be preloaded.
func (r *Review) ClientUser() *uuid.UUID {
	if r.Client == nil {
		return nil
	}
	return r.Client.UserID
}
