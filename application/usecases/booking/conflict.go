package booking

import (
	"context"
	"fmt"

	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/domain/schedule"
)

// ConflictChecker tests a candidate interval against every booking of a room.
type ConflictChecker struct {
	bookings repository.BookingRepository
}

func NewConflictChecker(bookings repository.BookingRepository) *ConflictChecker {
	return &ConflictChecker{bookings: bookings}
}

// HasConflict rejects inverted or empty intervals with
// schedule.ErrInvalidInterval before looking at existing bookings.
// excludeBookingID may be empty.
func (c *ConflictChecker) HasConflict(ctx context.Context, roomID string, candidate schedule.Interval, excludeBookingID string) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}

	existing, err := c.bookings.ListByRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to load room bookings: %w", err)
	}

	return schedule.FirstConflict(candidate, existing, excludeBookingID) != nil, nil
}
