package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page selects a slice of a list. Size 0 returns everything.
type Page struct {
	Number int
	Size   int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return db
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return db.Offset((number - 1) * p.Size).Limit(p.Size)
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

// findPage counts the filtered rows of T and loads one page of them. Ordering
// and preloads are applied after counting so the count query stays valid.
func findPage[T any](db *gorm.DB, page Page, order string, preloads ...string) ([]T, int64, error) {
	db = db.Model(new(T)).Session(&gorm.Session{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := page.apply(db)
	if order != "" {
		q = q.Order(order)
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func getByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, missing error, preloads ...string) (*T, error) {
	var entity T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&entity, "id = ?", id).Error; err != nil {
		return nil, notFound(err, missing)
	}
	return &entity, nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID, missing error) error {
	res := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missing
	}
	return nil
}

func toLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
