package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/presentation/controllers/booking"
)

func BookingRoutes(router *gin.RouterGroup, controller booking.BookingController, writeLimiter gin.HandlerFunc) {
	bookings := router.Group("/bookings")
	{
		bookings.GET("/my", controller.ListMine)
		bookings.GET("/room/:roomId", controller.ListByRoom)
		bookings.GET("/:id", controller.GetBooking)
		bookings.POST("", writeLimiter, controller.CreateBooking)
		bookings.PUT("/:id", writeLimiter, controller.UpdateBooking)
		bookings.DELETE("/:id", writeLimiter, controller.DeleteBooking)

		bookings.POST("/:id/join", controller.Join)
		bookings.DELETE("/:id/leave", controller.Leave)
	}
}
