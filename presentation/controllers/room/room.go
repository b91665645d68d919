package room

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/application/usecases/room"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/presentation/controllers/common"
)

type RoomController interface {
	ListRooms(ctx *gin.Context)
	ListMyRooms(ctx *gin.Context)
	GetRoom(ctx *gin.Context)
	CreateRoom(ctx *gin.Context)
	UpdateRoom(ctx *gin.Context)
	DeleteRoom(ctx *gin.Context)
	AddMember(ctx *gin.Context)
	UpdateMemberRole(ctx *gin.Context)
	RemoveMember(ctx *gin.Context)
}

type roomController struct {
	usecase room.RoomUseCase
	clock   clock.Clock
}

func NewRoomController(usecase room.RoomUseCase, clk clock.Clock) RoomController {
	return &roomController{
		usecase: usecase,
		clock:   clk,
	}
}

func (c *roomController) ListRooms(ctx *gin.Context) {
	rooms, err := c.usecase.GetAll(ctx.Request.Context())
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	now := c.clock.Now()
	resp := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		resp = append(resp, ToRoomResponse(r, now))
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *roomController) ListMyRooms(ctx *gin.Context) {
	memberships, err := c.usecase.ListMine(ctx.Request.Context(), common.UserID(ctx))
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	now := c.clock.Now()
	resp := make([]MyRoomResponse, 0, len(memberships))
	for _, m := range memberships {
		if m.MeetingRoom == nil {
			continue
		}
		resp = append(resp, MyRoomResponse{
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
			Room:     ToRoomResponse(*m.MeetingRoom, now),
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *roomController) GetRoom(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	r, err := c.usecase.GetByID(ctx.Request.Context(), id)
	if err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToRoomResponse(*r, c.clock.Now()))
}

func (c *roomController) CreateRoom(ctx *gin.Context) {
	var req CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	r, err := c.usecase.Create(ctx.Request.Context(), common.UserID(ctx), room.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, RoomMessageResponse{
		Message: "meeting room created successfully",
		Room:    ToRoomResponse(*r, c.clock.Now()),
	})
}

func (c *roomController) UpdateRoom(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	r, err := c.usecase.Update(ctx.Request.Context(), common.UserID(ctx), id, room.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, RoomMessageResponse{
		Message: "meeting room updated successfully",
		Room:    ToRoomResponse(*r, c.clock.Now()),
	})
}

func (c *roomController) DeleteRoom(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	if err := c.usecase.Delete(ctx.Request.Context(), common.UserID(ctx), id); err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, common.MessageResponse{Message: "meeting room deleted successfully"})
}

func (c *roomController) AddMember(ctx *gin.Context) {
	id, ok := common.BindID(ctx)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	m, err := c.usecase.AddMember(ctx.Request.Context(), common.UserID(ctx), id, room.AddMemberInput{
		UserEmail: req.UserEmail,
		Role:      req.Role,
	})
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, MemberMessageResponse{
		Message: "user added to room successfully",
		Member:  ToMemberResponse(*m),
	})
}

func (c *roomController) UpdateMemberRole(ctx *gin.Context) {
	var params MemberParam
	if !common.BindURI(ctx, &params) {
		return
	}

	var req UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.WriteBindError(ctx, err)
		return
	}

	m, err := c.usecase.UpdateMemberRole(ctx.Request.Context(), common.UserID(ctx), params.ID, params.UserID, req.Role)
	if err != nil {
		common.WriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, MemberMessageResponse{
		Message: "user role updated successfully",
		Member:  ToMemberResponse(*m),
	})
}

func (c *roomController) RemoveMember(ctx *gin.Context) {
	var params MemberParam
	if !common.BindURI(ctx, &params) {
		return
	}

	if err := c.usecase.RemoveMember(ctx.Request.Context(), common.UserID(ctx), params.ID, params.UserID); err != nil {
		common.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, common.MessageResponse{Message: "user removed from room successfully"})
}
