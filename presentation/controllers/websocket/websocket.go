package websocket

import (
	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/application/usecases/room"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/hilthontt/roomly/infrastructure/websocket"
	"github.com/hilthontt/roomly/presentation/controllers/common"
	"go.uber.org/zap"
)

type WebSocketController interface {
	HandleRoomEvents(ctx *gin.Context)
}

type webSocketController struct {
	roomUseCase   room.RoomUseCase
	wsRoomManager *websocket.RoomManager
	wsCore        *websocket.Core
	logger        *logger.Logger
}

func NewWebSocketController(
	roomUseCase room.RoomUseCase,
	wsRoomManager *websocket.RoomManager,
	wsCore *websocket.Core,
	logger *logger.Logger,
) WebSocketController {
	return &webSocketController{
		roomUseCase:   roomUseCase,
		wsRoomManager: wsRoomManager,
		wsCore:        wsCore,
		logger:        logger,
	}
}

// HandleRoomEvents upgrades a room member's request to a feed of the
// room's booking and membership events.
func (c *webSocketController) HandleRoomEvents(ctx *gin.Context) {
	roomID, ok := common.BindID(ctx)
	if !ok {
		return
	}
	userID := common.UserID(ctx)

	if err := c.roomUseCase.RequireMember(ctx.Request.Context(), userID, roomID); err != nil {
		common.WriteError(ctx, err)
		return
	}

	conn, err := c.wsRoomManager.Upgrade(ctx.Writer, ctx.Request)
	if err != nil {
		// The upgrader has already written an HTTP error.
		c.logger.Warn("websocket upgrade failed",
			zap.String("userID", userID),
			zap.String("roomID", roomID),
			zap.Error(err),
		)
		return
	}

	client := websocket.NewClient(conn, userID, roomID)
	c.wsCore.Register(client)

	go client.WritePump(c.wsCore)
	go client.ReadPump(c.wsCore)
}
