package participant

import (
	"context"
	"testing"
	"time"

	"github.com/hilthontt/roomly/application/usecases/access"
	"github.com/hilthontt/roomly/application/usecases/booking"
	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/domain/repository/mocks"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	roomID    = "room-1"
	bookingID = "b1"
	memberID  = "member-1"
)

var (
	start = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
)

type stubSweeper struct {
	calls int
}

func (s *stubSweeper) Sweep(ctx context.Context) int {
	s.calls++
	return 0
}

type fixture struct {
	participants *mocks.ParticipantRepository
	bookings     *mocks.BookingRepository
	memberships  *mocks.MembershipRepository
	sweeper      *stubSweeper
	clock        *clock.FakeClock
	uc           ParticipantUseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		participants: new(mocks.ParticipantRepository),
		bookings:     new(mocks.BookingRepository),
		memberships:  new(mocks.MembershipRepository),
		sweeper:      &stubSweeper{},
		clock:        clock.Fake(now),
	}
	transactor := new(mocks.Transactor)
	transactor.On("WithinTransaction", mock.Anything).Return()

	b := &model.Booking{
		BaseModel:     model.BaseModel{ID: bookingID},
		MeetingRoomID: roomID,
		StartTime:     start,
		EndTime:       end,
	}
	f.bookings.On("GetByID", mock.Anything, bookingID).Return(b, nil).Maybe()
	f.bookings.On("LockByID", mock.Anything, bookingID).Return(b, nil).Maybe()
	f.memberships.On("Get", mock.Anything, roomID, memberID).Return(&model.RoomMembership{Role: model.RoleUser}, nil).Maybe()
	f.memberships.On("Get", mock.Anything, roomID, mock.Anything).Return(nil, repository.ErrNotFound).Maybe()

	log := logger.NewNopLogger()
	f.uc = NewParticipantUseCase(
		f.participants,
		f.bookings,
		transactor,
		access.NewGate(f.memberships),
		f.sweeper,
		f.clock,
		events.NewEventPublisher(16, log),
		log,
	)
	return f
}

func TestJoinWhileActive(t *testing.T) {
	ctx := context.Background()

	for _, now := range []time.Time{start, start.Add(30 * time.Minute), end.Add(-time.Nanosecond)} {
		f := newFixture(now)
		f.participants.On("Get", mock.Anything, bookingID, memberID).Return(nil, repository.ErrNotFound)
		f.participants.On("Create", mock.Anything, mock.MatchedBy(func(p *model.BookingParticipant) bool {
			return p.BookingID == bookingID && p.UserID == memberID
		})).Return(nil)
		f.participants.On("GetWithUser", mock.Anything, bookingID, memberID).
			Return(&model.BookingParticipant{BookingID: bookingID, UserID: memberID}, nil)

		participant, err := f.uc.Join(ctx, memberID, bookingID)
		require.NoError(t, err, now)
		assert.Equal(t, memberID, participant.UserID)
		assert.Equal(t, 1, f.sweeper.calls)
	}
}

func TestJoinOutsideActiveWindow(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"before start", start.Add(-time.Minute), ErrBookingNotStarted},
		{"exactly at end", end, ErrBookingEnded},
		{"after end", end.Add(time.Hour), ErrBookingEnded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(tc.now)
			f.participants.On("Get", mock.Anything, bookingID, memberID).Return(nil, repository.ErrNotFound)

			_, err := f.uc.Join(ctx, memberID, bookingID)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
			f.participants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestJoinRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("non member", func(t *testing.T) {
		f := newFixture(start)
		_, err := f.uc.Join(ctx, "stranger", bookingID)
		assert.ErrorIs(t, err, access.ErrNotRoomMember)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("already participant", func(t *testing.T) {
		f := newFixture(start)
		f.participants.On("Get", mock.Anything, bookingID, memberID).Return(&model.BookingParticipant{}, nil)

		_, err := f.uc.Join(ctx, memberID, bookingID)
		assert.ErrorIs(t, err, ErrAlreadyParticipant)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("concurrent duplicate insert", func(t *testing.T) {
		f := newFixture(start)
		f.participants.On("Get", mock.Anything, bookingID, memberID).Return(nil, repository.ErrNotFound)
		f.participants.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

		_, err := f.uc.Join(ctx, memberID, bookingID)
		assert.ErrorIs(t, err, ErrAlreadyParticipant)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(start)
		f.bookings.On("GetByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

		_, err := f.uc.Join(ctx, memberID, "nope")
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})
}

func TestLeave(t *testing.T) {
	ctx := context.Background()

	t.Run("participant leaves even after the booking ended", func(t *testing.T) {
		f := newFixture(end.Add(time.Hour))
		f.participants.On("Delete", mock.Anything, bookingID, memberID).Return(nil)

		require.NoError(t, f.uc.Leave(ctx, memberID, bookingID))
		f.participants.AssertExpectations(t)
	})

	t.Run("non participant", func(t *testing.T) {
		f := newFixture(start)
		f.participants.On("Delete", mock.Anything, bookingID, memberID).Return(repository.ErrNotFound)

		err := f.uc.Leave(ctx, memberID, bookingID)
		assert.ErrorIs(t, err, ErrNotParticipant)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
