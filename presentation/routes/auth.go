package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/presentation/controllers/auth"
)

func AuthRoutes(router *gin.RouterGroup, controller auth.AuthController, throttle, requireAuth gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", throttle, controller.Register)
		authGroup.POST("/login", throttle, controller.Login)
		authGroup.GET("/me", requireAuth, controller.Me)
	}
}
