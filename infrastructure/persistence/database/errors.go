package database

import (
	stderrors "errors"

	"github.com/hilthontt/roomly/domain/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation           = "23505"
	pgExclusionViolation        = "23P01"
	pgInvalidTextRepresentation = "22P02" // malformed uuid literal; matches no row
)

// TranslateError maps driver errors onto the repository sentinels and wraps
// everything else with op.
func TranslateError(err error, op string) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.WithMessage(repository.ErrDuplicate, pgErr.ConstraintName)
		case pgExclusionViolation:
			return errors.WithMessage(repository.ErrOverlap, pgErr.ConstraintName)
		case pgInvalidTextRepresentation:
			return repository.ErrNotFound
		}
	}

	return errors.Wrap(err, op)
}
