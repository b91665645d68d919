package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/presentation/controllers/room"
)

// RoomRoutes expects router to be authenticated already.
func RoomRoutes(router *gin.RouterGroup, controller room.RoomController, writeLimiter gin.HandlerFunc) {
	rooms := router.Group("/rooms")
	{
		rooms.GET("", controller.ListRooms)
		rooms.GET("/my", controller.ListMyRooms)
		rooms.GET("/:id", controller.GetRoom)
		rooms.POST("", writeLimiter, controller.CreateRoom)
		rooms.PUT("/:id", writeLimiter, controller.UpdateRoom)
		rooms.DELETE("/:id", writeLimiter, controller.DeleteRoom)

		rooms.POST("/:id/users", writeLimiter, controller.AddMember)
		rooms.PATCH("/:id/users/:userId", writeLimiter, controller.UpdateMemberRole)
		rooms.DELETE("/:id/users/:userId", writeLimiter, controller.RemoveMember)
	}
}
