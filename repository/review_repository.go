package repository

import (
	"context"

	"bellezza-backend/apperror"
	"bellezza-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const reviewConflict = "review for this appointment already exists"

type ReviewFilter struct {
	ClientID  *uuid.UUID
	MinRating int
}

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Omit("Appointment", "Client").Create(review).Error
	return translate(err, reviewConflict)
}

func (r *ReviewRepository) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	return getByID[models.Review](ctx, r.db, id, apperror.ErrReviewNotFound, "Client")
}

// Exists reports whether clientID already reviewed appointmentID.
func (r *ReviewRepository) Exists(ctx context.Context, appointmentID, clientID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("appointment_id = ? AND client_id = ?", appointmentID, clientID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter, page Page) ([]models.Review, int64, error) {
	q := r.db.WithContext(ctx)
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}
	return findPage[models.Review](q, page, "created_at DESC", "Client")
}

// Update writes rating and comment only; the reviewing client never changes.
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Model(&models.Review{ID: review.ID}).Updates(map[string]interface{}{
		"rating":  review.Rating,
		"comment": review.Comment,
	}).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Review](ctx, r.db, id, apperror.ErrReviewNotFound)
}
