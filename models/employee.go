package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a salon master. Services lists what the employee is able to perform.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Position  string    `gorm:"index" json:"position"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Services []Service `gorm:"many2many:employee_services;constraint:OnDelete:CASCADE" json:"services"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// Performs reports whether serviceID is in the employee's service set.
// Services must be preloaded.
func (e *Employee) Performs(serviceID uuid.UUID) bool {
	for _, s := range e.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}
