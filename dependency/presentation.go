package dependency

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/hilthontt/roomly/infrastructure/cache"
	"github.com/hilthontt/roomly/infrastructure/metrics"
	"github.com/hilthontt/roomly/infrastructure/persistence/database"
	"github.com/hilthontt/roomly/presentation/controllers/auth"
	"github.com/hilthontt/roomly/presentation/controllers/booking"
	"github.com/hilthontt/roomly/presentation/controllers/room"
	wsCtrl "github.com/hilthontt/roomly/presentation/controllers/websocket"
	"github.com/hilthontt/roomly/presentation/middlewares"
	"github.com/hilthontt/roomly/presentation/routes"
	"go.uber.org/zap"
)

func (c *Container) initMiddleware() {
	c.AuthThrottle = middlewares.NewAuthThrottle(10, 5)

	c.Logger.Info("Middleware components initialized successfully")
}

func (c *Container) initControllers() {
	c.AuthController = auth.NewAuthController(c.AuthUC)
	c.RoomController = room.NewRoomController(c.RoomUC, c.Clock)
	c.BookingController = booking.NewBookingController(c.BookingUC, c.ParticipantUC, c.Clock)
	c.WebsocketController = wsCtrl.NewWebSocketController(c.RoomUC, c.WSRoomManager, c.WSCore, c.Logger)

	c.Logger.Info("Controllers initialized successfully")
}

func (c *Container) SetupRouter() *gin.Engine {
	switch c.Config.Server.RunMode {
	case "release", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	binding.Validator = new(middlewares.DefaultValidator)

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         5 * time.Second,
	}))

	if c.Config.IsProduction() {
		router.Use(middlewares.ForceHttps(c.Config))
	}

	router.Use(middlewares.GinLogger(c.Logger))
	router.Use(middlewares.CorsMiddleware(c.Config))
	router.Use(middlewares.RequestMetrics(c.MetricsManager))

	router.GET("/health", c.healthCheckHandler)

	c.registerObservabilityRoutes(router)

	c.registerAPIRoutes(router)

	c.Logger.Info("Router configured successfully")

	return router
}

func (c *Container) registerAPIRoutes(router *gin.Engine) {
	redisClient := cache.GetRedis()
	requireAuth := middlewares.AuthMiddleware(c.AuthUC, c.Logger)

	api := router.Group("/api")
	routes.AuthRoutes(api, c.AuthController, c.AuthThrottle.Middleware(), requireAuth)

	protected := api.Group("")
	{
		protected.Use(requireAuth)
		protected.Use(middlewares.RateLimiterMiddleware(redisClient, c.Logger, middlewares.LenientRateLimiterConfig()))

		writeLimiter := middlewares.RateLimiterMiddleware(redisClient, c.Logger, middlewares.StrictRateLimiterConfig())

		routes.RoomRoutes(protected, c.RoomController, writeLimiter)
		routes.BookingRoutes(protected, c.BookingController, writeLimiter)
		routes.WebsocketRoutes(protected, c.WebsocketController)
	}
}

func (c *Container) healthCheckHandler(ctx *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status": "healthy",
		"time":   c.Clock.Now().Format(time.RFC3339),
	}

	if db, err := database.GetDb().DB(); err != nil || db.PingContext(ctx.Request.Context()) != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "unreachable"
	}

	ctx.JSON(status, body)
}

func (c *Container) registerObservabilityRoutes(router *gin.Engine) {
	metricsGroup := router.Group("/observability")
	{
		metrics.GetHandler(metricsGroup, c.MetricsManager)
	}
}

// Shutdown stops producers before the stores they write to.
func (c *Container) Shutdown() error {
	c.Logger.Info("Shutting down dependencies...")

	if c.ParticipantCleanupJob != nil {
		c.ParticipantCleanupJob.Stop()
	}

	if c.EventPublisher != nil {
		c.EventPublisher.Close()
	}
	if c.amqpSink != nil {
		c.amqpSink.Close()
	}

	if c.WSCore != nil {
		c.WSCore.Shutdown()
	}
	if c.cancel != nil {
		c.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if c.TracerProvider != nil {
		if err := c.TracerProvider.Shutdown(ctx); err != nil {
			c.Logger.Error("failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if c.MeterProvider != nil {
		if err := c.MeterProvider.Shutdown(ctx); err != nil {
			c.Logger.Error("failed to shutdown meter provider", zap.Error(err))
		}
	}

	if c.DistributedCache != nil {
		c.DistributedCache.Close()
	}
	cache.CloseRedis()
	database.CloseDb()

	c.Logger.Info("Dependencies shut down successfully")

	_ = c.Logger.Log.Sync()

	return nil
}
