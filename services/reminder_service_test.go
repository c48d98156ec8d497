package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bellezza-backend/models"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func reminderAppointment(name, email string) models.Appointment {
	return models.Appointment{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Date:     models.NewDate(time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC)),
		Time:     datatypes.NewTime(10, 30, 0, 0),
		Client:   &models.Client{Name: name, Email: email, Phone: "+79170000000"},
		Employee: &models.Employee{Name: "Olga"},
		Service:  &models.Service{Name: "Manicure"},
	}
}

func newReminderService(jobs *mockJobStore, logs *mockLogStore, notifiers ...Notifier) *ReminderService {
	s := NewReminderService(jobs, logs, notifiers, ReminderSchedule{
		Reminders: "0 8 * * *",
		Purge:     "0 0 1 * *",
	}, salonLoc, utils.NewTestLogger())
	s.now = func() time.Time { return time.Date(2030, 6, 10, 23, 30, 0, 0, salonLoc) }
	return s
}

func forClient(name string) any {
	return mock.MatchedBy(func(a *models.Appointment) bool { return a.Client.Name == name })
}

func TestSendReminders_ContinuesAfterFailure(t *testing.T) {
	jobs := &mockJobStore{}
	logs := &mockLogStore{}
	email := &mockNotifier{channel: ChannelEmail}
	sms := &mockNotifier{channel: ChannelSMS}

	first := reminderAppointment("Anna", "anna@example.com")
	second := reminderAppointment("Maria", "maria@example.com")
	orphan := models.Appointment{ID: uuid.New()}
	tomorrow := models.NewDate(time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC))

	jobs.On("ListForDate", mock.Anything, tomorrow).
		Return([]models.Appointment{first, orphan, second}, nil)

	// SMS has no reachable recipients, so it never sends.
	sms.On("Recipient", mock.Anything).Return("")

	email.On("Recipient", forClient("Anna")).Return("anna@example.com")
	email.On("Recipient", forClient("Maria")).Return("maria@example.com")
	email.On("Send", mock.Anything, "anna@example.com", mock.Anything).Return(errors.New("smtp down"))
	email.On("Send", mock.Anything, "maria@example.com", mock.Anything).Return(nil)

	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.ReminderLog) bool {
		return l.Status == models.ReminderFailed && l.ErrorMessage == "smtp down" && l.AppointmentID == first.ID
	})).Return(nil).Once()
	logs.On("Create", mock.Anything, mock.MatchedBy(func(l *models.ReminderLog) bool {
		return l.Status == models.ReminderSent && l.Channel == ChannelEmail && l.AppointmentID == second.ID
	})).Return(nil).Once()

	s := newReminderService(jobs, logs, sms, email)

	result, err := s.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Appointments)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.Skipped)

	jobs.AssertExpectations(t)
	logs.AssertExpectations(t)
	email.AssertExpectations(t)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendReminders_LogFailureDoesNotStopRun(t *testing.T) {
	jobs := &mockJobStore{}
	logs := &mockLogStore{}
	email := &mockNotifier{channel: ChannelEmail}

	a := reminderAppointment("Anna", "anna@example.com")
	jobs.On("ListForDate", mock.Anything, mock.Anything).Return([]models.Appointment{a}, nil)
	email.On("Recipient", mock.Anything).Return("anna@example.com")
	email.On("Send", mock.Anything, "anna@example.com", mock.Anything).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db gone"))

	result, err := newReminderService(jobs, logs, email).SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
}

func TestSendReminders_SkipsOverlappingRun(t *testing.T) {
	s := newReminderService(&mockJobStore{}, &mockLogStore{})
	s.reminderMu.Lock()
	defer s.reminderMu.Unlock()

	result, err := s.SendReminders(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestPurgeOldAppointments(t *testing.T) {
	jobs := &mockJobStore{}
	s := newReminderService(jobs, &mockLogStore{})
	now := s.now().UTC()

	jobs.On("DeleteCreatedBefore", mock.Anything, now.AddDate(0, 0, -365)).Return(3, nil)

	deleted, skipped, err := s.PurgeOldAppointments(context.Background())
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.EqualValues(t, 3, deleted)
	jobs.AssertExpectations(t)

	s.purgeMu.Lock()
	_, skipped, err = s.PurgeOldAppointments(context.Background())
	s.purgeMu.Unlock()
	require.NoError(t, err)
	assert.True(t, skipped)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := newReminderService(&mockJobStore{}, &mockLogStore{})
	s.schedule.Reminders = "every day"
	assert.Error(t, s.Start(context.Background()))

	s.schedule.Reminders = "0 8 * * *"
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
}

func TestRenderReminder(t *testing.T) {
	a := reminderAppointment("Anna", "anna@example.com")
	r := RenderReminder(&a, salonLoc)

	assert.Contains(t, r.Subject, "11.06.2030 at 10:30")
	assert.True(t, strings.HasPrefix(r.Body, "Hello Anna!"))
	assert.Contains(t, r.Body, "Service: Manicure")
	assert.Contains(t, r.Body, "Master: Olga")
}
