package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	bookingUseCase "github.com/hilthontt/roomly/application/usecases/booking"
	"github.com/hilthontt/roomly/application/usecases/participant"
	"github.com/hilthontt/roomly/domain/model"
	"github.com/hilthontt/roomly/domain/schedule"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/presentation/middlewares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	callerID  = "user-1"
	roomID    = "6f1c2d7e-8a3b-4c5d-9e0f-1a2b3c4d5e6f"
	bookingID = "0b7e4a52-3c1d-4f6e-8a9b-2c3d4e5f6a7b"
	missingID = "9d8c7b6a-5f4e-4d3c-8b2a-1f0e9d8c7b6a"
	endedID   = "3e2d1c0b-9a8f-4e7d-8c6b-5a4f3e2d1c0b"
)

var (
	now   = time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	start = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end   = time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
)

func init() {
	gin.SetMode(gin.TestMode)
	binding.Validator = new(middlewares.DefaultValidator)
}

type bookingUseCaseMock struct {
	mock.Mock
}

func (m *bookingUseCaseMock) booking(args mock.Arguments) (*model.Booking, error) {
	if b := args.Get(0); b != nil {
		return b.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *bookingUseCaseMock) Create(ctx context.Context, callerID string, input bookingUseCase.CreateInput) (*model.Booking, error) {
	return m.booking(m.Called(ctx, callerID, input))
}

func (m *bookingUseCaseMock) Update(ctx context.Context, callerID, bookingID string, input bookingUseCase.UpdateInput) (*model.Booking, error) {
	return m.booking(m.Called(ctx, callerID, bookingID, input))
}

func (m *bookingUseCaseMock) Delete(ctx context.Context, callerID, bookingID string) error {
	return m.Called(ctx, callerID, bookingID).Error(0)
}

func (m *bookingUseCaseMock) GetByID(ctx context.Context, bookingID string) (*model.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *bookingUseCaseMock) ListByRoom(ctx context.Context, roomID string) ([]model.Booking, error) {
	args := m.Called(ctx, roomID)
	bookings, _ := args.Get(0).([]model.Booking)
	return bookings, args.Error(1)
}

func (m *bookingUseCaseMock) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	bookings, _ := args.Get(0).([]model.Booking)
	return bookings, args.Error(1)
}

type participantUseCaseMock struct {
	mock.Mock
}

func (m *participantUseCaseMock) Join(ctx context.Context, callerID, bookingID string) (*model.BookingParticipant, error) {
	args := m.Called(ctx, callerID, bookingID)
	if p := args.Get(0); p != nil {
		return p.(*model.BookingParticipant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *participantUseCaseMock) Leave(ctx context.Context, callerID, bookingID string) error {
	return m.Called(ctx, callerID, bookingID).Error(0)
}

func newRouter(bookings *bookingUseCaseMock, participants *participantUseCaseMock) *gin.Engine {
	controller := NewBookingController(bookings, participants, clock.Fake(now))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middlewares.UserIDKey, callerID)
	})
	router.GET("/bookings/room/:roomId", controller.ListByRoom)
	router.GET("/bookings/:id", controller.GetBooking)
	router.DELETE("/bookings/:id", controller.DeleteBooking)
	router.POST("/bookings", controller.CreateBooking)
	router.POST("/bookings/:id/join", controller.Join)
	router.DELETE("/bookings/:id/leave", controller.Leave)
	return router
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetBookingIncludesState(t *testing.T) {
	bookings := new(bookingUseCaseMock)
	bookings.On("GetByID", mock.Anything, bookingID).Return(&model.Booking{
		BaseModel:     model.BaseModel{ID: bookingID},
		MeetingRoomID: roomID,
		StartTime:     start,
		EndTime:       end,
		Participants:  []model.BookingParticipant{{ID: "p1", UserID: callerID}},
	}, nil)

	w := do(newRouter(bookings, new(participantUseCaseMock)), http.MethodGet, "/bookings/"+bookingID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, schedule.StateActive, resp.State)
	assert.Len(t, resp.Participants, 1)
}

func TestGetBookingNotFound(t *testing.T) {
	bookings := new(bookingUseCaseMock)
	bookings.On("GetByID", mock.Anything, missingID).Return(nil, bookingUseCase.ErrBookingNotFound)

	w := do(newRouter(bookings, new(participantUseCaseMock)), http.MethodGet, "/bookings/"+missingID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"`+bookingUseCase.ErrBookingNotFound.Message+`"}`, w.Body.String())
}

func TestMalformedPathIDsAreRejected(t *testing.T) {
	bookings := new(bookingUseCaseMock)
	participants := new(participantUseCaseMock)
	router := newRouter(bookings, participants)

	tests := []struct {
		method string
		path   string
		field  string
	}{
		{http.MethodGet, "/bookings/abc", "id"},
		{http.MethodDelete, "/bookings/abc", "id"},
		{http.MethodGet, "/bookings/room/abc", "roomId"},
		{http.MethodPost, "/bookings/abc/join", "id"},
		{http.MethodDelete, "/bookings/abc/leave", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(router, tt.method, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation_error")
			assert.Contains(t, w.Body.String(), tt.field+" must be a valid UUID")
		})
	}

	bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything)
	participants.AssertNotCalled(t, "Join", mock.Anything, mock.Anything, mock.Anything)
	participants.AssertNotCalled(t, "Leave", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByRoom(t *testing.T) {
	bookings := new(bookingUseCaseMock)
	bookings.On("ListByRoom", mock.Anything, roomID).Return([]model.Booking{
		{BaseModel: model.BaseModel{ID: bookingID}, MeetingRoomID: roomID, StartTime: start, EndTime: end},
	}, nil)

	w := do(newRouter(bookings, new(participantUseCaseMock)), http.MethodGet, "/bookings/room/"+roomID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, bookingID, resp[0].ID)
}

func TestCreateBooking(t *testing.T) {
	bookings := new(bookingUseCaseMock)
	input := bookingUseCase.CreateInput{
		MeetingRoomID: roomID,
		StartTime:     start.Add(2 * time.Hour),
		EndTime:       end.Add(2 * time.Hour),
		Description:   "standup",
	}
	bookings.On("Create", mock.Anything, callerID, mock.MatchedBy(func(in bookingUseCase.CreateInput) bool {
		return in.MeetingRoomID == input.MeetingRoomID &&
			in.StartTime.Equal(input.StartTime) &&
			in.EndTime.Equal(input.EndTime) &&
			in.Description == input.Description
	})).Return(&model.Booking{
		BaseModel:     model.BaseModel{ID: bookingID},
		MeetingRoomID: roomID,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
	}, nil)

	w := do(newRouter(bookings, new(participantUseCaseMock)), http.MethodPost, "/bookings", map[string]any{
		"meetingRoomId": roomID,
		"startTime":     input.StartTime.Format(time.RFC3339),
		"endTime":       input.EndTime.Format(time.RFC3339),
		"description":   "standup",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, schedule.StateUpcoming, resp.Booking.State)
}

func TestCreateBookingRejectsInvalidBody(t *testing.T) {
	bookings := new(bookingUseCaseMock)

	w := do(newRouter(bookings, new(participantUseCaseMock)), http.MethodPost, "/bookings", map[string]any{
		"meetingRoomId": "not-a-uuid",
		"startTime":     start.Format(time.RFC3339),
		"endTime":       end.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "meetingRoomId must be a valid UUID")
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingConflict(t *testing.T) {
	bookings := new(bookingUseCaseMock)
	bookings.On("Create", mock.Anything, callerID, mock.Anything).Return(nil, bookingUseCase.ErrTimeSlotTaken)

	w := do(newRouter(bookings, new(participantUseCaseMock)), http.MethodPost, "/bookings", map[string]any{
		"meetingRoomId": roomID,
		"startTime":     start.Format(time.RFC3339),
		"endTime":       end.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJoinAndLeave(t *testing.T) {
	participants := new(participantUseCaseMock)
	participants.On("Join", mock.Anything, callerID, bookingID).
		Return(&model.BookingParticipant{ID: "p1", BookingID: bookingID, UserID: callerID}, nil)
	participants.On("Join", mock.Anything, callerID, endedID).Return(nil, participant.ErrBookingEnded)
	participants.On("Leave", mock.Anything, callerID, bookingID).Return(nil)

	router := newRouter(new(bookingUseCaseMock), participants)

	w := do(router, http.MethodPost, "/bookings/"+bookingID+"/join", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/bookings/"+endedID+"/join", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")

	w = do(router, http.MethodDelete, "/bookings/"+bookingID+"/leave", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
