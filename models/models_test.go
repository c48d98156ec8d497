package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	allowed := map[AppointmentStatus][]AppointmentStatus{
		StatusPending:   {StatusPending, StatusConfirmed, StatusCanceled},
		StatusConfirmed: {StatusConfirmed, StatusCompleted, StatusCanceled},
		StatusCompleted: {StatusCompleted},
		StatusCanceled:  {StatusCanceled},
	}
	all := []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled}

	for from, targets := range allowed {
		for _, to := range all {
			assert.Equal(t, contains(targets, to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestAppointmentStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, AppointmentStatus("archived").Valid())
}

func TestCombineDateTime(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	d := NewDate(time.Date(2099, 1, 1, 23, 59, 0, 0, time.UTC))
	at := CombineDateTime(d, datatypes.NewTime(10, 30, 0, 0), moscow)

	assert.Equal(t, time.Date(2099, 1, 1, 10, 30, 0, 0, moscow), at)
	assert.Equal(t, time.Date(2099, 1, 1, 7, 30, 0, 0, time.UTC), at.UTC())
}

func TestEmployeePerforms(t *testing.T) {
	haircut := Service{ID: uuid.New()}
	coloring := Service{ID: uuid.New()}
	e := Employee{Services: []Service{haircut}}

	assert.True(t, e.Performs(haircut.ID))
	assert.False(t, e.Performs(coloring.ID))
}

func TestOwnerAccessors(t *testing.T) {
	userID := uuid.New()
	client := &Client{UserID: &userID}

	assert.Equal(t, &userID, client.OwnerUser())
	assert.Equal(t, &userID, (&Appointment{Client: client}).ClientUser())
	assert.Nil(t, (&Appointment{}).ClientUser())
	assert.Equal(t, &userID, (&Review{Client: client}).ClientUser())
}

func contains(list []AppointmentStatus, s AppointmentStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
