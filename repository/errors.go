package repository

import (
	"errors"

	"bellezza-backend/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err comes from a unique constraint.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// translate maps storage errors onto the application taxonomy.
func translate(err error, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return apperror.Wrap(err, apperror.KindConflict, conflictMsg)
	case isForeignKeyViolation(err):
		return apperror.Wrap(err, apperror.KindValidation, "referenced record does not exist")
	}
	return err
}

func notFound(err error, missing error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return err
}
