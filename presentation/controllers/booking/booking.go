package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/application/usecases/booking"
	"github.com/hilthontt/roomly/application/usecases/participant"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/presentation/controllers/common"
)

type BookingController interface {
	ListMine(ctx *gin.Context)
	ListByRoom(ctx *gin.Context)
	GetBooking(ctx *gin.Context)
	CreateBooking(ctx *gin.Context)
	UpdateBooking(ctx *gin.Context)
	DeleteBooking(ctx *gin.Context)
	Join(ctx *gin.Context)
	Leave(ctx *gin.Context)
}

type bookingController struct {
	bookings     booking.BookingUseCase
	participants participant.ParticipantUseCase
	clock        clock.Clock
}

func NewBookingController(
	bookings booking.BookingUseCase,
	participants participant.ParticipantUseCase,
	clk clock.Clock,
) BookingController {
	return &bookingController{
		bookings:     bookings,
		participants: participants,
		clock:        clk,
	}
}

func (c *bookingController) ListMine(ctx *gin.Context) {
	bookings, err := c.bookings.ListByUser(ctx.Request.Context(), common.UserID(ctx))
	if err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToBookingResponses(bookings, c.clock.Now()))
}

func (c *bookingController) ListByRoom(ctx *gin.Context) {
	var params RoomBookingsParam
	if !common.BindURI(ctx, &params) {
		return
	}

	bookings, err := c.bookings.ListByRoom(ctx.Request.Context(), params.RoomID)
	if err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToBookingResponses(bookings, c.clock.Now()))
}

func (c *bookingController) GetBooking(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	b, err := c.bookings.GetByID(ctx.Request.Context(), id)
	if err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToBookingResponse(*b, c.clock.Now()))
}

func (c *bookingController) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	b, err := c.bookings.Create(ctx.Request.Context(), common.UserID(ctx), booking.CreateInput{
		MeetingRoomID: req.MeetingRoomID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Description:   req.Description,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, BookingMessageResponse{
		Message: "booking created successfully",
		Booking: ToBookingResponse(*b, c.clock.Now()),
	})
}

func (c *bookingController) UpdateBooking(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	b, err := c.bookings.Update(ctx.Request.Context(), common.UserID(ctx), id, booking.UpdateInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, BookingMessageResponse{
		Message: "booking updated successfully",
		Booking: ToBookingResponse(*b, c.clock.Now()),
	})
}

func (c *bookingController) DeleteBooking(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	if err := c.bookings.Delete(ctx.Request.Context(), common.UserID(ctx), id); err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, common.MessageResponse{Message: "booking deleted successfully"})
}

func (c *bookingController) Join(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	p, err := c.participants.Join(ctx.Request.Context(), common.UserID(ctx), id)
	if err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, JoinResponse{
		Message:     "joined booking successfully",
		Participant: ToParticipantResponse(*p),
	})
}

func (c *bookingController) Leave(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	if err := c.participants.Leave(ctx.Request.Context(), common.UserID(ctx), id); err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, common.MessageResponse{Message: "left booking successfully"})
}
