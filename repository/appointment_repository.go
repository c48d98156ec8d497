package repository

import (
	"context"
	"time"

	"bellezza-backend/apperror"
	"bellezza-backend/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const slotConflict = "client already has an appointment at this date and time"

// Newest first.
const appointmentOrder = "appointment_date DESC, appointment_time DESC"

type AppointmentFilter struct {
	ClientID        *uuid.UUID
	EmployeeID      *uuid.UUID
	ServiceID       *uuid.UUID
	Date            *datatypes.Date
	Status          models.AppointmentStatus
	Search          string
	ExcludeCanceled bool
}

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	err := r.db.WithContext(ctx).Omit("Client", "Employee", "Service").Create(a).Error
	return translate(err, slotConflict)
}

// Update writes the mutable fields of a. CreatedAt is never touched.
func (r *AppointmentRepository) Update(ctx context.Context, a *models.Appointment) error {
	err := r.db.WithContext(ctx).Model(&models.Appointment{ID: a.ID}).Updates(map[string]interface{}{
		"client_id":        a.ClientID,
		"employee_id":      a.EmployeeID,
		"service_id":       a.ServiceID,
		"appointment_date": a.Date,
		"appointment_time": a.Time,
		"status":           a.Status,
	}).Error
	return translate(err, slotConflict)
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	err := r.db.WithContext(ctx).Model(&models.Appointment{ID: id}).Update("status", status).Error
	return translate(err, slotConflict)
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return getByID[models.Appointment](ctx, r.db, id, apperror.ErrAppointmentNotFound, "Client", "Employee", "Service")
}

func (r *AppointmentRepository) List(ctx context.Context, f AppointmentFilter, page Page) ([]models.Appointment, int64, error) {
	q := r.db.WithContext(ctx)
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.Date != nil {
		q = q.Where("appointment_date = ?", *f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ExcludeCanceled {
		q = q.Where("status <> ?", models.StatusCanceled)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("client_id IN (?) OR service_id IN (?)",
			r.db.Model(&models.Client{}).Select("id").Where("LOWER(name) LIKE ?", like),
			r.db.Model(&models.Service{}).Select("id").Where("LOWER(name) LIKE ?", like),
		)
	}
	return findPage[models.Appointment](q, page, appointmentOrder, "Client", "Employee", "Service")
}

// ExistsActiveSlot reports whether clientID holds a non-canceled appointment
// at date and t, ignoring excludeID.
func (r *AppointmentRepository) ExistsActiveSlot(ctx context.Context, clientID uuid.UUID, date datatypes.Date, t datatypes.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("client_id = ? AND appointment_date = ? AND appointment_time = ?", clientID, date, t).
		Where("status <> ?", models.StatusCanceled).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// ListForDate returns the non-canceled appointments on date.
func (r *AppointmentRepository) ListForDate(ctx context.Context, date datatypes.Date) ([]models.Appointment, error) {
	appointments, _, err := r.List(ctx, AppointmentFilter{Date: &date, ExcludeCanceled: true}, Page{})
	return appointments, err
}

// DeleteCreatedBefore removes appointments created before cutoff.
func (r *AppointmentRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.Appointment{})
	return res.RowsAffected, res.Error
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Appointment](ctx, r.db, id, apperror.ErrAppointmentNotFound)
}
