package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hilthontt/roomly/application/usecases/access"
	"github.com/hilthontt/roomly/domain/apperror"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/domain/repository/mocks"
	"github.com/hilthontt/roomly/domain/schedule"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	roomID  = "room-1"
	adminID = "admin-1"
	userID  = "user-1"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

type stubSweeper struct {
	calls int
}

func (s *stubSweeper) Sweep(ctx context.Context) int {
	s.calls++
	return 0
}

type fixture struct {
	bookings     *mocks.BookingRepository
	participants *mocks.ParticipantRepository
	rooms        *mocks.RoomRepository
	memberships  *mocks.MembershipRepository
	transactor   *mocks.Transactor
	sweeper      *stubSweeper
	clock        *clock.FakeClock
	uc           BookingUseCase
}

func newFixture() *fixture {
	f := &fixture{
		bookings:     new(mocks.BookingRepository),
		participants: new(mocks.ParticipantRepository),
		rooms:        new(mocks.RoomRepository),
		memberships:  new(mocks.MembershipRepository),
		transactor:   new(mocks.Transactor),
		sweeper:      &stubSweeper{},
		clock:        clock.Fake(now),
	}
	f.transactor.On("WithinTransaction", mock.Anything).Return()
	f.memberships.On("Get", mock.Anything, roomID, adminID).Return(&model.RoomMembership{Role: model.RoleAdmin}, nil).Maybe()
	f.memberships.On("Get", mock.Anything, roomID, userID).Return(&model.RoomMembership{Role: model.RoleUser}, nil).Maybe()
	f.memberships.On("Get", mock.Anything, roomID, mock.Anything).Return(nil, repository.ErrNotFound).Maybe()

	log := logger.NewNopLogger()
	f.uc = NewBookingUseCase(
		f.bookings,
		f.participants,
		f.rooms,
		f.transactor,
		access.NewGate(f.memberships),
		f.sweeper,
		f.clock,
		events.NewEventPublisher(16, log),
		log,
	)
	return f
}

func existing(id string, start, end time.Time) model.Booking {
	return model.Booking{
		BaseModel:     model.BaseModel{ID: id},
		MeetingRoomID: roomID,
		UserID:        adminID,
		StartTime:     start,
		EndTime:       end,
	}
}

func (f *fixture) expectCreate(existingBookings ...model.Booking) {
	f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
	f.bookings.On("ListByRoom", mock.Anything, roomID).Return(existingBookings, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Booking).ID = "new-booking"
		}).
		Return(nil)
	f.bookings.On("GetDetailed", mock.Anything, "new-booking").Return(&model.Booking{BaseModel: model.BaseModel{ID: "new-booking"}}, nil)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds for an admin with a free slot", func(t *testing.T) {
		f := newFixture()
		f.expectCreate(existing("b1", at(10, 0), at(11, 0)))

		booking, err := f.uc.Create(ctx, adminID, CreateInput{
			MeetingRoomID: roomID,
			StartTime:     at(11, 0),
			EndTime:       at(12, 0),
			Description:   "standup",
		})
		require.NoError(t, err)
		assert.Equal(t, "new-booking", booking.ID)
		f.transactor.AssertNumberOfCalls(t, "WithinTransaction", 1)
		f.bookings.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
			return b.UserID == adminID && b.Description == "standup" && b.StartTime.Equal(at(11, 0))
		}))
	})

	t.Run("sub-microsecond precision is dropped before the overlap check", func(t *testing.T) {
		f := newFixture()
		f.expectCreate(existing("b1", at(10, 0), at(11, 0)))

		_, err := f.uc.Create(ctx, adminID, CreateInput{
			MeetingRoomID: roomID,
			StartTime:     at(9, 0).Add(700 * time.Nanosecond),
			EndTime:       at(10, 0).Add(400 * time.Nanosecond),
		})
		require.NoError(t, err)
		f.bookings.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
			return b.StartTime.Equal(at(9, 0)) && b.EndTime.Equal(at(10, 0))
		}))
	})

	t.Run("member without admin role is forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Create(ctx, userID, CreateInput{MeetingRoomID: roomID, StartTime: at(10, 0), EndTime: at(11, 0)})
		assert.ErrorIs(t, err, access.ErrAdminRequired)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("non member is forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Create(ctx, "stranger", CreateInput{MeetingRoomID: roomID, StartTime: at(10, 0), EndTime: at(11, 0)})
		assert.ErrorIs(t, err, access.ErrNotRoomMember)
	})

	t.Run("start in the past is invalid state", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: now.Add(-time.Second), EndTime: at(11, 0)})
		assert.ErrorIs(t, err, ErrStartInPast)
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
	})

	t.Run("start exactly now is allowed", func(t *testing.T) {
		f := newFixture()
		f.expectCreate()
		_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: now, EndTime: at(9, 0)})
		assert.NoError(t, err)
	})

	t.Run("inverted and empty intervals are invalid state", func(t *testing.T) {
		f := newFixture()
		for _, end := range []time.Time{at(10, 0), at(9, 30)} {
			_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: at(10, 0), EndTime: end})
			assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
			assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
		}
		f.bookings.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything)
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("ListByRoom", mock.Anything, roomID).Return([]model.Booking{existing("b1", at(10, 0), at(11, 0))}, nil)

		_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: at(10, 30), EndTime: at(11, 30)})
		assert.ErrorIs(t, err, ErrTimeSlotTaken)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("exclusion constraint violation is a conflict", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("ListByRoom", mock.Anything, roomID).Return([]model.Booking{}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

		_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: at(10, 0), EndTime: at(11, 0)})
		assert.ErrorIs(t, err, ErrTimeSlotTaken)
	})

	t.Run("room deleted concurrently", func(t *testing.T) {
		f := newFixture()
		f.rooms.On("LockByID", mock.Anything, roomID).Return(nil, repository.ErrNotFound)

		_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: at(10, 0), EndTime: at(11, 0)})
		assert.ErrorIs(t, err, access.ErrRoomNotFound)
	})
}

func TestCreateBookingScenario(t *testing.T) {
	ctx := context.Background()
	taken := existing("b1", at(10, 0), at(11, 0))

	cases := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"overlapping the second half", at(10, 30), at(11, 30), ErrTimeSlotTaken},
		{"back to back after", at(11, 0), at(12, 0), nil},
		{"back to back before", at(9, 0), at(10, 0), nil},
		{"covering", at(9, 0), at(12, 0), ErrTimeSlotTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.expectCreate(taken)

			_, err := f.uc.Create(ctx, adminID, CreateInput{MeetingRoomID: roomID, StartTime: tc.start, EndTime: tc.end})
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()
	b1 := existing("b1", at(10, 0), at(11, 0))
	description := "retro"
	newEnd := at(11, 30)

	t.Run("description only skips participant and overlap checks", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)
		f.bookings.On("Update", mock.Anything, "b1", map[string]any{"description": "retro"}).Return(nil)
		f.bookings.On("GetDetailed", mock.Anything, "b1").Return(&b1, nil)

		_, err := f.uc.Update(ctx, adminID, "b1", UpdateInput{Description: &description})
		require.NoError(t, err)
		f.participants.AssertNotCalled(t, "CountByBooking", mock.Anything, mock.Anything)
		f.bookings.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything)
		f.transactor.AssertNotCalled(t, "WithinTransaction", mock.Anything)
	})

	t.Run("time change with participants is rejected", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("LockByID", mock.Anything, "b1").Return(&b1, nil)
		f.participants.On("CountByBooking", mock.Anything, "b1").Return(int64(1), nil)

		_, err := f.uc.Update(ctx, adminID, "b1", UpdateInput{EndTime: &newEnd})
		assert.ErrorIs(t, err, ErrParticipantsBlockTimeChange)
		assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
		f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("time change excludes the booking itself", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("LockByID", mock.Anything, "b1").Return(&b1, nil)
		f.participants.On("CountByBooking", mock.Anything, "b1").Return(int64(0), nil)
		f.bookings.On("ListByRoom", mock.Anything, roomID).Return([]model.Booking{b1, existing("b2", at(12, 0), at(13, 0))}, nil)
		f.bookings.On("Update", mock.Anything, "b1", map[string]any{
			"start_time": at(10, 0),
			"end_time":   at(11, 30),
		}).Return(nil)
		f.bookings.On("GetDetailed", mock.Anything, "b1").Return(&b1, nil)

		_, err := f.uc.Update(ctx, adminID, "b1", UpdateInput{EndTime: &newEnd})
		require.NoError(t, err)
		f.bookings.AssertExpectations(t)
	})

	t.Run("time change is truncated to microseconds", func(t *testing.T) {
		f := newFixture()
		touching := at(12, 0).Add(999 * time.Nanosecond)
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("LockByID", mock.Anything, "b1").Return(&b1, nil)
		f.participants.On("CountByBooking", mock.Anything, "b1").Return(int64(0), nil)
		f.bookings.On("ListByRoom", mock.Anything, roomID).Return([]model.Booking{b1, existing("b2", at(12, 0), at(13, 0))}, nil)
		f.bookings.On("Update", mock.Anything, "b1", map[string]any{
			"start_time": at(10, 0),
			"end_time":   at(12, 0),
		}).Return(nil)
		f.bookings.On("GetDetailed", mock.Anything, "b1").Return(&b1, nil)

		_, err := f.uc.Update(ctx, adminID, "b1", UpdateInput{EndTime: &touching})
		require.NoError(t, err)
		f.bookings.AssertExpectations(t)
	})

	t.Run("time change into another booking conflicts", func(t *testing.T) {
		f := newFixture()
		lateEnd := at(12, 30)
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("LockByID", mock.Anything, "b1").Return(&b1, nil)
		f.participants.On("CountByBooking", mock.Anything, "b1").Return(int64(0), nil)
		f.bookings.On("ListByRoom", mock.Anything, roomID).Return([]model.Booking{b1, existing("b2", at(12, 0), at(13, 0))}, nil)

		_, err := f.uc.Update(ctx, adminID, "b1", UpdateInput{EndTime: &lateEnd})
		assert.ErrorIs(t, err, ErrTimeSlotTaken)
	})

	t.Run("effective interval must stay valid", func(t *testing.T) {
		f := newFixture()
		start := at(11, 0)
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)
		f.rooms.On("LockByID", mock.Anything, roomID).Return(&model.MeetingRoom{}, nil)
		f.bookings.On("LockByID", mock.Anything, "b1").Return(&b1, nil)
		f.participants.On("CountByBooking", mock.Anything, "b1").Return(int64(0), nil)

		_, err := f.uc.Update(ctx, adminID, "b1", UpdateInput{StartTime: &start})
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

		_, err := f.uc.Update(ctx, adminID, "nope", UpdateInput{Description: &description})
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)

		_, err := f.uc.Update(ctx, userID, "b1", UpdateInput{Description: &description})
		assert.ErrorIs(t, err, access.ErrAdminRequired)
	})
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("ended booking can be deleted by an admin", func(t *testing.T) {
		f := newFixture()
		ended := existing("b1", at(6, 0), at(7, 0))
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&ended, nil)
		f.bookings.On("Delete", mock.Anything, "b1").Return(nil)

		require.NoError(t, f.uc.Delete(ctx, adminID, "b1"))
		f.bookings.AssertCalled(t, "Delete", mock.Anything, "b1")
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		f := newFixture()
		b1 := existing("b1", at(10, 0), at(11, 0))
		f.bookings.On("GetByID", mock.Anything, "b1").Return(&b1, nil)

		err := f.uc.Delete(ctx, userID, "b1")
		assert.ErrorIs(t, err, access.ErrAdminRequired)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		f.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestReadsSweepFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b1 := existing("b1", at(10, 0), at(11, 0))
	f.bookings.On("GetDetailed", mock.Anything, "b1").Return(&b1, nil)
	f.bookings.On("ListDetailedByRoom", mock.Anything, roomID).Return([]model.Booking{b1}, nil)
	f.bookings.On("ListDetailedByUser", mock.Anything, adminID).Return([]model.Booking{b1}, nil)

	_, err := f.uc.GetByID(ctx, "b1")
	require.NoError(t, err)
	_, err = f.uc.ListByRoom(ctx, roomID)
	require.NoError(t, err)
	_, err = f.uc.ListByUser(ctx, adminID)
	require.NoError(t, err)

	assert.Equal(t, 3, f.sweeper.calls)
}

func TestReadFailuresAreInternal(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListDetailedByRoom", mock.Anything, roomID).Return(nil, errors.New("db down"))

	_, err := f.uc.ListByRoom(context.Background(), roomID)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
