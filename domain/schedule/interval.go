// Package schedule holds the time rules of a booking: half-open interval
// overlap and the lifecycle state derived from the current instant.
package schedule

import (
	"time"

	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
)

var ErrInvalidInterval = apperror.InvalidState("end time must be after start time")

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

func Of(b model.Booking) Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

func (i Interval) Validate() error {
	if !i.Start.Before(i.End) {
		return ErrInvalidInterval
	}
	return nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether a and b share any instant. Back-to-back intervals,
// where one ends exactly when the other begins, do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FirstConflict returns the first booking in existing that overlaps candidate,
// ignoring the booking whose id equals excludeID. It returns nil when the
// candidate is free.
func FirstConflict(candidate Interval, existing []model.Booking, excludeID string) *model.Booking {
	for i := range existing {
		if excludeID != "" && existing[i].ID == excludeID {
			continue
		}
		if Overlaps(candidate, Of(existing[i])) {
			return &existing[i]
		}
	}
	return nil
}
