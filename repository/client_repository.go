package repository

import (
	"context"

	"bellezza-backend/apperror"
	"bellezza-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const clientConflict = "client with this email or phone already exists"

type ClientFilter struct {
	// UserID restricts the list to the client linked to that user.
	UserID *uuid.UUID
	Search string
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context, f ClientFilter, page Page) ([]models.Client, int64, error) {
	q := r.db.WithContext(ctx)
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}
	return findPage[models.Client](q, page, "name ASC")
}

func (r *ClientRepository) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return getByID[models.Client](ctx, r.db, id, apperror.ErrClientNotFound)
}

// GetByUser returns the client profile of userID.
func (r *ClientRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error
	if err != nil {
		return nil, notFound(err, apperror.ErrNoClientProfile)
	}
	return &client, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, clientConflict)
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	err := r.db.WithContext(ctx).Model(c).
		Select("Name", "Email", "Phone", "BirthDate").
		Updates(c).Error
	return translate(err, clientConflict)
}

// Delete removes the client with its appointments and reviews.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Client](ctx, r.db, id, apperror.ErrClientNotFound)
}
