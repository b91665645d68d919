package schedule

import (
	"testing"
	"time"

	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func booking(id string, start, end time.Time) model.Booking {
	b := model.Booking{StartTime: start, EndTime: end}
	b.ID = id
	return b
}

func TestOverlaps(t *testing.T) {
	base := NewInterval(at(10, 0), at(11, 0))

	tests := []struct {
		name     string
		other    Interval
		expected bool
	}{
		{"identical", NewInterval(at(10, 0), at(11, 0)), true},
		{"starts inside", NewInterval(at(10, 30), at(11, 30)), true},
		{"ends inside", NewInterval(at(9, 30), at(10, 30)), true},
		{"contains", NewInterval(at(9, 0), at(12, 0)), true},
		{"contained", NewInterval(at(10, 15), at(10, 45)), true},
		{"back to back after", NewInterval(at(11, 0), at(12, 0)), false},
		{"back to back before", NewInterval(at(9, 0), at(10, 0)), false},
		{"disjoint", NewInterval(at(13, 0), at(14, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(base, tt.other))
			assert.Equal(t, tt.expected, Overlaps(tt.other, base), "overlap must be symmetric")
		})
	}
}

func TestOverlapsMatchesStrictInequalities(t *testing.T) {
	points := []time.Time{at(8, 0), at(9, 0), at(10, 0), at(11, 0), at(12, 0)}

	for _, s1 := range points {
		for _, e1 := range points {
			if !s1.Before(e1) {
				continue
			}
			for _, s2 := range points {
				for _, e2 := range points {
					if !s2.Before(e2) {
						continue
					}
					expected := s1.Before(e2) && s2.Before(e1)
					assert.Equal(t, expected, Overlaps(NewInterval(s1, e1), NewInterval(s2, e2)))
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, NewInterval(at(10, 0), at(10, 1)).Validate())

	err := NewInterval(at(10, 0), at(10, 0)).Validate()
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	assert.ErrorIs(t, NewInterval(at(11, 0), at(10, 0)).Validate(), ErrInvalidInterval)
}

func TestFirstConflict(t *testing.T) {
	existing := []model.Booking{
		booking("a", at(10, 0), at(11, 0)),
		booking("b", at(13, 0), at(14, 0)),
	}

	t.Run("overlapping candidate", func(t *testing.T) {
		conflict := FirstConflict(NewInterval(at(10, 30), at(11, 30)), existing, "")
		require.NotNil(t, conflict)
		assert.Equal(t, "a", conflict.ID)
	})

	t.Run("back to back candidates", func(t *testing.T) {
		assert.Nil(t, FirstConflict(NewInterval(at(11, 0), at(12, 0)), existing, ""))
		assert.Nil(t, FirstConflict(NewInterval(at(9, 0), at(10, 0)), existing, ""))
	})

	t.Run("excluded booking is ignored", func(t *testing.T) {
		assert.Nil(t, FirstConflict(NewInterval(at(10, 15), at(10, 45)), existing, "a"))

		conflict := FirstConflict(NewInterval(at(10, 15), at(13, 30)), existing, "a")
		require.NotNil(t, conflict)
		assert.Equal(t, "b", conflict.ID)
	})

	t.Run("empty room", func(t *testing.T) {
		assert.Nil(t, FirstConflict(NewInterval(at(10, 0), at(11, 0)), nil, ""))
	})
}
