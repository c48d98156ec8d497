// services/reminder_service.go
package services

import (
	"context"
	"sync"
	"time"

	"bellezza-backend/models"
	"bellezza-backend/repository"
	"bellezza-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type AppointmentJobStore interface {
	ListForDate(ctx context.Context, date datatypes.Date) ([]models.Appointment, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ReminderLogStore interface {
	Create(ctx context.Context, log *models.ReminderLog) error
	List(ctx context.Context, status string, page repository.Page) ([]models.ReminderLog, int64, error)
}

type ReminderSchedule struct {
	Reminders     string
	Purge         string
	RetentionDays int
}

// ReminderResult summarises one reminder run.
type ReminderResult struct {
	Appointments int  `json:"appointments"`
	Sent         int  `json:"sent"`
	Failed       int  `json:"failed"`
	Skipped      bool `json:"skipped,omitempty"`
}

// ReminderService runs the daily reminder dispatch and the retention purge.
// Each job holds its own run lock; a trigger that fires while the previous
// run is still going is skipped.
type ReminderService struct {
	appointments AppointmentJobStore
	logs         ReminderLogStore
	notifiers    []Notifier
	schedule     ReminderSchedule
	loc          *time.Location
	log          logrus.FieldLogger
	now          func() time.Time

	reminderMu sync.Mutex
	purgeMu    sync.Mutex
	cron       *cron.Cron
}

func NewReminderService(appointments AppointmentJobStore, logs ReminderLogStore, notifiers []Notifier, schedule ReminderSchedule, loc *time.Location, log logrus.FieldLogger) *ReminderService {
	if loc == nil {
		loc = time.UTC
	}
	if schedule.RetentionDays <= 0 {
		schedule.RetentionDays = 365
	}
	return &ReminderService{
		appointments: appointments,
		logs:         logs,
		notifiers:    notifiers,
		schedule:     schedule,
		loc:          loc,
		log:          log,
		now:          time.Now,
	}
}

// Start registers both jobs and starts the scheduler.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.loc))

	if _, err := c.AddFunc(s.schedule.Reminders, func() {
		defer utils.Recover(s.log)
		if _, err := s.SendReminders(ctx); err != nil {
			s.log.WithError(err).Error("reminder run failed")
		}
	}); err != nil {
		return err
	}
	if _, err := c.AddFunc(s.schedule.Purge, func() {
		defer utils.Recover(s.log)
		if _, _, err := s.PurgeOldAppointments(ctx); err != nil {
			s.log.WithError(err).Error("purge run failed")
		}
	}); err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.log.WithFields(logrus.Fields{
		"reminders": s.schedule.Reminders,
		"purge":     s.schedule.Purge,
	}).Info("Reminder scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("Reminder scheduler stopped")
}

// SendReminders notifies clients of tomorrow's appointments. A failed send is
// logged and recorded; the remaining appointments are still processed.
func (s *ReminderService) SendReminders(ctx context.Context) (ReminderResult, error) {
	if !s.reminderMu.TryLock() {
		s.log.Warn("reminder run still in progress, skipping")
		return ReminderResult{Skipped: true}, nil
	}
	defer s.reminderMu.Unlock()

	tomorrow := models.NewDate(utils.Tomorrow(s.now().In(s.loc)))
	appointments, err := s.appointments.ListForDate(ctx, tomorrow)
	if err != nil {
		return ReminderResult{}, err
	}

	s.log.WithField("appointments", len(appointments)).Info("Starting daily reminder processing...")

	result := ReminderResult{Appointments: len(appointments)}
	for i := range appointments {
		a := &appointments[i]
		if a.Client == nil || a.Service == nil || a.Employee == nil {
			s.log.WithField("appointment_id", a.ID).Warn("appointment missing relations, skipping reminder")
			continue
		}
		reminder := RenderReminder(a, s.loc)

		for _, n := range s.notifiers {
			to := n.Recipient(a)
			if to == "" {
				continue
			}
			if s.deliver(ctx, n, to, reminder) {
				result.Sent++
			} else {
				result.Failed++
			}
		}
	}

	s.log.WithFields(logrus.Fields{
		"sent":   result.Sent,
		"failed": result.Failed,
	}).Info("Daily reminder processing completed")
	return result, nil
}

func (s *ReminderService) deliver(ctx context.Context, n Notifier, to string, r Reminder) bool {
	entry := s.log.WithFields(logrus.Fields{
		"appointment_id": r.Appointment.ID,
		"channel":        n.Channel(),
		"recipient":      to,
	})

	status := models.ReminderSent
	errorMsg := ""
	if err := n.Send(ctx, to, r); err != nil {
		entry.WithError(err).Error("Failed to send reminder")
		status = models.ReminderFailed
		errorMsg = err.Error()
	} else {
		entry.Info("Reminder sent")
	}

	reminderLog := models.ReminderLog{
		AppointmentID: r.Appointment.ID,
		ClientID:      r.Appointment.ClientID,
		Recipient:     to,
		Subject:       r.Subject,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       n.Channel(),
		SentAt:        s.now().UTC(),
	}
	if err := s.logs.Create(ctx, &reminderLog); err != nil {
		entry.WithError(err).Error("Failed to log reminder")
	}
	return status == models.ReminderSent
}

// PurgeOldAppointments deletes appointments created more than RetentionDays ago.
func (s *ReminderService) PurgeOldAppointments(ctx context.Context) (int64, bool, error) {
	if !s.purgeMu.TryLock() {
		s.log.Warn("purge run still in progress, skipping")
		return 0, true, nil
	}
	defer s.purgeMu.Unlock()

	cutoff := s.now().UTC().AddDate(0, 0, -s.schedule.RetentionDays)
	deleted, err := s.appointments.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, false, err
	}
	s.log.WithFields(logrus.Fields{
		"deleted": deleted,
		"cutoff":  cutoff,
	}).Info("old appointments purged")
	return deleted, false, nil
}

func (s *ReminderService) Logs(ctx context.Context, status string, page repository.Page) ([]models.ReminderLog, int64, error) {
	return s.logs.List(ctx, status, page)
}
