package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Client struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"userId"`
	Name      string          `gorm:"not null" json:"name"`
	Email     string          `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string          `gorm:"uniqueIndex;not null" json:"phone"`
	BirthDate *datatypes.Date `gorm:"type:date" json:"birthDate"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`

	Appointments []Appointment `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews      []Review      `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// OwnerUser returns the user linked to this client profile, if any.
func (c *Client) OwnerUser() *uuid.UUID {
	return c.UserID
}
