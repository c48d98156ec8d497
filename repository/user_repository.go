package repository

import (
	"context"
	"time"

	"bellezza-backend/apperror"
	"bellezza-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = apperror.NotFound("user not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return getByID[models.User](ctx, r.db, id, ErrUserNotFound, "Client")
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", toLower(email)).First(&user).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit("Client").Create(u).Error, "user with this email or username already exists")
}

// Register creates the user and its client profile in one transaction.
func (r *UserRepository) Register(ctx context.Context, u *models.User, c *models.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client").Create(u).Error; err != nil {
			return translate(err, "user with this email or username already exists")
		}
		c.UserID = &u.ID
		if err := tx.Create(c).Error; err != nil {
			return translate(err, clientConflict)
		}
		u.Client = c
		return nil
	})
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at).Error
}
