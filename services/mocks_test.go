package services

import (
	"context"
	"sync"
	"time"

	"bellezza-backend/models"
	"bellezza-backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

type mockAppointmentStore struct{ mock.Mock }

func (m *mockAppointmentStore) Create(ctx context.Context, a *models.Appointment) error {
	args := m.Called(ctx, a)
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockAppointmentStore) Update(ctx context.Context, a *models.Appointment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAppointmentStore) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*models.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentStore) List(ctx context.Context, f repository.AppointmentFilter, page repository.Page) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, f, page)
	items, _ := args.Get(0).([]models.Appointment)
	return items, int64(args.Int(1)), args.Error(2)
}

func (m *mockAppointmentStore) ExistsActiveSlot(ctx context.Context, clientID uuid.UUID, date datatypes.Date, t datatypes.Time, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clientID, date, t, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockStaffDirectory struct{ mock.Mock }

func (m *mockStaffDirectory) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *mockStaffDirectory) EmployeesForService(ctx context.Context, serviceID uuid.UUID) ([]models.Employee, error) {
	args := m.Called(ctx, serviceID)
	e, _ := args.Get(0).([]models.Employee)
	return e, args.Error(1)
}

type mockClientDirectory struct{ mock.Mock }

func (m *mockClientDirectory) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Client)
	return c, args.Error(1)
}

func (m *mockClientDirectory) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*models.Client)
	return c, args.Error(1)
}

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) Create(ctx context.Context, r *models.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewStore) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewStore) Exists(ctx context.Context, appointmentID, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, appointmentID, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewStore) List(ctx context.Context, f repository.ReviewFilter, page repository.Page) ([]models.Review, int64, error) {
	args := m.Called(ctx, f, page)
	items, _ := args.Get(0).([]models.Review)
	return items, int64(args.Int(1)), args.Error(2)
}

func (m *mockReviewStore) Update(ctx context.Context, r *models.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockJobStore struct{ mock.Mock }

func (m *mockJobStore) ListForDate(ctx context.Context, date datatypes.Date) ([]models.Appointment, error) {
	args := m.Called(ctx, date)
	items, _ := args.Get(0).([]models.Appointment)
	return items, args.Error(1)
}

func (m *mockJobStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return int64(args.Int(0)), args.Error(1)
}

type mockLogStore struct{ mock.Mock }

func (m *mockLogStore) Create(ctx context.Context, log *models.ReminderLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *mockLogStore) List(ctx context.Context, status string, page repository.Page) ([]models.ReminderLog, int64, error) {
	args := m.Called(ctx, status, page)
	items, _ := args.Get(0).([]models.ReminderLog)
	return items, int64(args.Int(1)), args.Error(2)
}

type mockNotifier struct {
	mock.Mock
	channel string
}

func (m *mockNotifier) Channel() string { return m.channel }

func (m *mockNotifier) Recipient(a *models.Appointment) string {
	return m.Called(a).String(0)
}

func (m *mockNotifier) Send(ctx context.Context, to string, r Reminder) error {
	return m.Called(ctx, to, r).Error(0)
}

// recordingPublisher keeps published event names.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(event string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}
