package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Staying in the same state is always allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCanceled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCanceled
	}
	return false
}

// Appointment is a client's booking of a service with an employee.
// A client holds at most one non-canceled appointment per date and time.
type Appointment struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ClientID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_client_slot,where:status <> 'canceled'" json:"clientId"`
	EmployeeID uuid.UUID         `gorm:"type:uuid;not null;index" json:"employeeId"`
	ServiceID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"serviceId"`
	Date       datatypes.Date    `gorm:"column:appointment_date;type:date;not null;uniqueIndex:idx_appointments_client_slot;index" json:"date"`
	Time       datatypes.Time    `gorm:"column:appointment_time;not null;uniqueIndex:idx_appointments_client_slot" json:"time"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time         `gorm:"<-:create;index" json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`

	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"service,omitempty"`

	Reviews []Review `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	return
}

// StartsAt combines the appointment date and time in loc.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return CombineDateTime(a.Date, a.Time, loc)
}

// ClientUser returns the user that owns the appointment's client.
// Client must be preloaded.
func (a *Appointment) ClientUser() *uuid.UUID {
	if a.Client == nil {
		return nil
	}
	return a.Client.UserID
}

// CombineDateTime builds the wall-clock instant of d at t in loc.
func CombineDateTime(d datatypes.Date, t datatypes.Time, loc *time.Location) time.Time {
	y, m, day := time.Time(d).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc).Add(time.Duration(t))
}

// NewDate truncates t to a calendar date in UTC, the form dates are stored in.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
