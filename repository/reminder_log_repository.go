package repository

import (
	"context"

	"bellezza-backend/models"

	"gorm.io/gorm"
)

type ReminderLogRepository struct {
	db *gorm.DB
}

func NewReminderLogRepository(db *gorm.DB) *ReminderLogRepository {
	return &ReminderLogRepository{db: db}
}

func (r *ReminderLogRepository) Create(ctx context.Context, log *models.ReminderLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *ReminderLogRepository) List(ctx context.Context, status string, page Page) ([]models.ReminderLog, int64, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return findPage[models.ReminderLog](q, page, "sent_at DESC")
}
