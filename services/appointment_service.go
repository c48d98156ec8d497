package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bellezza-backend/apperror"
	"bellezza-backend/models"
	"bellezza-backend/policy"
	"bellezza-backend/repository"
	"bellezza-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type AppointmentStore interface {
	Create(ctx context.Context, a *models.Appointment) error
	Update(ctx context.Context, a *models.Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error
	Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	List(ctx context.Context, f repository.AppointmentFilter, page repository.Page) ([]models.Appointment, int64, error)
	ExistsActiveSlot(ctx context.Context, clientID uuid.UUID, date datatypes.Date, t datatypes.Time, excludeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffDirectory resolves services and the employees able to perform them.
type StaffDirectory interface {
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	EmployeesForService(ctx context.Context, serviceID uuid.UUID) ([]models.Employee, error)
}

type ClientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error)
}

// BookingInput describes a new appointment. ClientID is honoured for staff
// only; everyone else books for their own client profile.
type BookingInput struct {
	ClientID   *uuid.UUID
	EmployeeID uuid.UUID
	ServiceID  uuid.UUID
	Date       datatypes.Date
	Time       datatypes.Time
}

// AppointmentPatch holds the fields an edit may change. Nil means unchanged.
type AppointmentPatch struct {
	EmployeeID *uuid.UUID
	ServiceID  *uuid.UUID
	Date       *datatypes.Date
	Time       *datatypes.Time
	Status     *models.AppointmentStatus
}

type AppointmentService struct {
	appointments AppointmentStore
	staff        StaffDirectory
	clients      ClientDirectory
	events       Publisher
	log          logrus.FieldLogger
	loc          *time.Location
	now          func() time.Time
}

func NewAppointmentService(appointments AppointmentStore, staff StaffDirectory, clients ClientDirectory, events Publisher, loc *time.Location, log logrus.FieldLogger) *AppointmentService {
	if events == nil {
		events = noopPublisher{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentService{
		appointments: appointments,
		staff:        staff,
		clients:      clients,
		events:       events,
		log:          log,
		loc:          loc,
		now:          time.Now,
	}
}

// Today is the current salon date.
func (s *AppointmentService) Today() datatypes.Date {
	return models.NewDate(s.now().In(s.loc))
}

// Create books a pending appointment after checking the employee performs the
// service, the slot is in the future and the client has nothing else then.
func (s *AppointmentService) Create(ctx context.Context, p utils.Principal, in BookingInput) (*models.Appointment, error) {
	client, err := s.bookingClient(ctx, p, in.ClientID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmployee(ctx, in.EmployeeID, in.ServiceID); err != nil {
		return nil, err
	}
	if err := s.checkFuture(in.Date, in.Time); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, client.ID, in.Date, in.Time, uuid.Nil); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ClientID:   client.ID,
		EmployeeID: in.EmployeeID,
		ServiceID:  in.ServiceID,
		Date:       in.Date,
		Time:       in.Time,
		Status:     models.StatusPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"client_id":      client.ID,
	}).Info("appointment created")

	return s.reloadAndPublish(ctx, appointment.ID, EventAppointmentCreated)
}

// Edit applies patch to an appointment the principal may write. Status
// changes from non-staff principals are dropped without error.
func (s *AppointmentService) Edit(ctx context.Context, p utils.Principal, id uuid.UUID, patch AppointmentPatch) (*models.Appointment, error) {
	appointment, err := s.writable(ctx, p, id, http.MethodPatch)
	if err != nil {
		return nil, err
	}

	switch appointment.Status {
	case models.StatusCompleted:
		return nil, apperror.State("a completed appointment cannot be edited")
	case models.StatusCanceled:
		return nil, apperror.State("a canceled appointment cannot be edited")
	}

	updated := *appointment
	if patch.EmployeeID != nil {
		updated.EmployeeID = *patch.EmployeeID
	}
	if patch.ServiceID != nil {
		updated.ServiceID = *patch.ServiceID
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if patch.Time != nil {
		updated.Time = *patch.Time
	}
	if patch.Status != nil && p.IsStaff {
		next := *patch.Status
		if !next.Valid() {
			return nil, apperror.Validation("unknown appointment status")
		}
		if !appointment.Status.CanTransitionTo(next) {
			return nil, apperror.State("cannot move appointment from " + string(appointment.Status) + " to " + string(next))
		}
		updated.Status = next
	}

	// A status-only staff edit may touch a past appointment; anything that
	// reschedules it must land in the future.
	staffChanged := updated.EmployeeID != appointment.EmployeeID || updated.ServiceID != appointment.ServiceID
	slotChanged := !time.Time(updated.Date).Equal(time.Time(appointment.Date)) || updated.Time != appointment.Time
	if staffChanged || slotChanged {
		if err := s.checkFuture(updated.Date, updated.Time); err != nil {
			return nil, err
		}
	}
	if staffChanged {
		if err := s.checkEmployee(ctx, updated.EmployeeID, updated.ServiceID); err != nil {
			return nil, err
		}
	}
	if slotChanged && updated.Status != models.StatusCanceled {
		if err := s.checkSlot(ctx, updated.ClientID, updated.Date, updated.Time, updated.ID); err != nil {
			return nil, err
		}
	}

	if err := s.appointments.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return s.reloadAndPublish(ctx, id, eventForStatus(appointment.Status, updated.Status))
}

// Cancel cancels an appointment. Canceling twice is a no-op.
func (s *AppointmentService) Cancel(ctx context.Context, p utils.Principal, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.writable(ctx, p, id, http.MethodPost)
	if err != nil {
		return nil, err
	}

	switch appointment.Status {
	case models.StatusCanceled:
		return appointment, nil
	case models.StatusCompleted:
		return nil, apperror.State("a completed appointment cannot be canceled")
	}
	return s.transition(ctx, appointment, models.StatusCanceled, EventAppointmentCanceled)
}

// Confirm is the staff action moving a pending appointment to confirmed.
func (s *AppointmentService) Confirm(ctx context.Context, p utils.Principal, id uuid.UUID) (*models.Appointment, error) {
	if !p.IsStaff {
		return nil, apperror.ErrForbidden
	}
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch appointment.Status {
	case models.StatusConfirmed:
		return appointment, nil
	case models.StatusCompleted, models.StatusCanceled:
		return nil, apperror.State("a " + string(appointment.Status) + " appointment cannot be confirmed")
	}
	return s.transition(ctx, appointment, models.StatusConfirmed, EventAppointmentConfirmed)
}

// Complete is the staff action closing a confirmed appointment.
func (s *AppointmentService) Complete(ctx context.Context, p utils.Principal, id uuid.UUID) (*models.Appointment, error) {
	if !p.IsStaff {
		return nil, apperror.ErrForbidden
	}
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch appointment.Status {
	case models.StatusCompleted:
		return appointment, nil
	case models.StatusConfirmed:
		return s.transition(ctx, appointment, models.StatusCompleted, EventAppointmentCompleted)
	}
	return nil, apperror.State("only a confirmed appointment can be completed")
}

// Get returns an appointment visible to p. Other clients' appointments are
// reported as missing.
func (s *AppointmentService) Get(ctx context.Context, p utils.Principal, id uuid.UUID) (*models.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.visible(p, appointment) {
		return nil, apperror.ErrAppointmentNotFound
	}
	return appointment, nil
}

// List returns p's visible appointments, newest first.
func (s *AppointmentService) List(ctx context.Context, p utils.Principal, f repository.AppointmentFilter, page repository.Page) ([]models.Appointment, int64, error) {
	if !p.IsStaff {
		client, err := s.ownClient(ctx, p)
		if errors.Is(err, apperror.ErrNoClientProfile) {
			return []models.Appointment{}, 0, nil
		}
		if err != nil {
			return nil, 0, err
		}
		f.ClientID = &client.ID
	}
	// Booking forms ask for taken slots of a service on a day.
	if f.Date != nil && f.ServiceID != nil {
		f.ExcludeCanceled = true
	}
	return s.appointments.List(ctx, f, page)
}

// Urgent lists today's pending appointments visible to p.
func (s *AppointmentService) Urgent(ctx context.Context, p utils.Principal, page repository.Page) ([]models.Appointment, int64, error) {
	today := s.Today()
	return s.List(ctx, p, repository.AppointmentFilter{Date: &today, Status: models.StatusPending}, page)
}

// AllowedEmployees returns the employees who can take a booking for serviceID.
func (s *AppointmentService) AllowedEmployees(ctx context.Context, serviceID uuid.UUID) ([]models.Employee, error) {
	if _, err := s.staff.GetService(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.staff.EmployeesForService(ctx, serviceID)
}

func (s *AppointmentService) Delete(ctx context.Context, p utils.Principal, id uuid.UUID) error {
	appointment, err := s.writable(ctx, p, id, http.MethodDelete)
	if err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(EventAppointmentDeleted, appointment)
	return nil
}

func (s *AppointmentService) transition(ctx context.Context, a *models.Appointment, next models.AppointmentStatus, event string) (*models.Appointment, error) {
	if !a.Status.CanTransitionTo(next) {
		return nil, apperror.State("cannot move appointment from " + string(a.Status) + " to " + string(next))
	}
	if err := s.appointments.UpdateStatus(ctx, a.ID, next); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"appointment_id": a.ID,
		"from":           a.Status,
		"to":             next,
	}).Info("appointment status changed")

	a.Status = next
	s.events.Publish(event, a)
	return a, nil
}

func (s *AppointmentService) reloadAndPublish(ctx context.Context, id uuid.UUID, event string) (*models.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(event, appointment)
	return appointment, nil
}

func (s *AppointmentService) bookingClient(ctx context.Context, p utils.Principal, clientID *uuid.UUID) (*models.Client, error) {
	if p.IsStaff && clientID != nil {
		client, err := s.clients.Get(ctx, *clientID)
		if apperror.IsNotFound(err) {
			return nil, apperror.Validation("unknown client")
		}
		return client, err
	}
	return s.ownClient(ctx, p)
}

func (s *AppointmentService) ownClient(ctx context.Context, p utils.Principal) (*models.Client, error) {
	if !p.Authenticated {
		return nil, apperror.Unauthenticated("authentication required")
	}
	return s.clients.GetByUser(ctx, p.UserID)
}

// checkEmployee resolves the employees allowed for serviceID first and only
// then accepts employeeID if it is one of them.
func (s *AppointmentService) checkEmployee(ctx context.Context, employeeID, serviceID uuid.UUID) error {
	if _, err := s.staff.GetService(ctx, serviceID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.Validation("unknown service")
		}
		return err
	}
	allowed, err := s.staff.EmployeesForService(ctx, serviceID)
	if err != nil {
		return err
	}
	for _, e := range allowed {
		if e.ID == employeeID {
			return nil
		}
	}
	return apperror.Validation("the selected employee does not perform this service")
}

func (s *AppointmentService) checkFuture(date datatypes.Date, t datatypes.Time) error {
	start := models.CombineDateTime(date, t, s.loc)
	if !start.After(s.now()) {
		return apperror.Validation("appointment time must be in the future")
	}
	return nil
}

func (s *AppointmentService) checkSlot(ctx context.Context, clientID uuid.UUID, date datatypes.Date, t datatypes.Time, excludeID uuid.UUID) error {
	taken, err := s.appointments.ExistsActiveSlot(ctx, clientID, date, t, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("client already has an appointment at this date and time")
	}
	return nil
}

func (s *AppointmentService) writable(ctx context.Context, p utils.Principal, id uuid.UUID, method string) (*models.Appointment, error) {
	appointment, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccess(p, appointment, method) {
		return nil, apperror.ErrForbidden
	}
	return appointment, nil
}

func (s *AppointmentService) visible(p utils.Principal, a *models.Appointment) bool {
	if p.IsStaff {
		return true
	}
	owner := a.ClientUser()
	return p.Authenticated && owner != nil && *owner == p.UserID
}

func eventForStatus(from, to models.AppointmentStatus) string {
	if from == to {
		return EventAppointmentUpdated
	}
	switch to {
	case models.StatusCanceled:
		return EventAppointmentCanceled
	case models.StatusConfirmed:
		return EventAppointmentConfirmed
	case models.StatusCompleted:
		return EventAppointmentCompleted
	}
	return EventAppointmentUpdated
}
