package database

import (
	"errors"
	"testing"

	"github.com/hilthontt/roomly/domain/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil, "op"))
	})

	t.Run("record not found", func(t *testing.T) {
		err := TranslateError(gorm.ErrRecordNotFound, "get booking")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_room_user"}, "add member")
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Contains(t, err.Error(), "idx_room_user")
	})

	t.Run("exclusion violation", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}, "create booking")
		assert.ErrorIs(t, err, repository.ErrOverlap)
	})

	t.Run("malformed uuid matches nothing", func(t *testing.T) {
		err := TranslateError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}, "get booking")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := TranslateError(cause, "list bookings")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "list bookings: connection reset", err.Error())
	})
}
