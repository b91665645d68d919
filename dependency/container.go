package dependency

import (
	"context"
	"fmt"

	"github.com/hilthontt/roomly/application/usecases/access"
	authUseCase "github.com/hilthontt/roomly/application/usecases/auth"
	bookingUseCase "github.com/hilthontt/roomly/application/usecases/booking"
	"github.com/hilthontt/roomly/application/usecases/cleanup"
	participantUseCase "github.com/hilthontt/roomly/application/usecases/participant"
	roomUseCase "github.com/hilthontt/roomly/application/usecases/room"
	"github.com/hilthontt/roomly/domain/repository"
	"github.com/hilthontt/roomly/infrastructure/cache"
	"github.com/hilthontt/roomly/infrastructure/clock"
	"github.com/hilthontt/roomly/infrastructure/config"
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/jobs"
	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/hilthontt/roomly/infrastructure/metrics"
	"github.com/hilthontt/roomly/infrastructure/websocket"
	"github.com/hilthontt/roomly/presentation/controllers/auth"
	"github.com/hilthontt/roomly/presentation/controllers/booking"
	"github.com/hilthontt/roomly/presentation/controllers/room"
	wsCtrl "github.com/hilthontt/roomly/presentation/controllers/websocket"
	"github.com/hilthontt/roomly/presentation/middlewares"
	metricSdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type Container struct {
	Config *config.Config
	Logger *logger.Logger
	Clock  clock.Clock

	TracerProvider *trace.TracerProvider
	MeterProvider  *metricSdk.MeterProvider
	MetricsManager metrics.Manager

	DistributedCache *cache.DistributedCache

	UserRepo        repository.UserRepository
	RoomRepo        repository.RoomRepository
	MembershipRepo  repository.MembershipRepository
	BookingRepo     repository.BookingRepository
	ParticipantRepo repository.ParticipantRepository
	AuditLogRepo    repository.AuditLogRepository
	Transactor      repository.Transactor

	WSRoomManager  *websocket.RoomManager
	WSCore         *websocket.Core
	EventPublisher *events.EventPublisher
	amqpSink       *events.AMQPSink

	Gate          access.Gate
	Sweeper       cleanup.Sweeper
	AuthUC        authUseCase.AuthUseCase
	RoomUC        roomUseCase.RoomUseCase
	BookingUC     bookingUseCase.BookingUseCase
	ParticipantUC participantUseCase.ParticipantUseCase

	AuthController      auth.AuthController
	RoomController      room.RoomController
	BookingController   booking.BookingController
	WebsocketController wsCtrl.WebSocketController

	AuthThrottle *middlewares.AuthThrottle

	ParticipantCleanupJob *jobs.ParticipantCleanupJob

	ctx    context.Context
	cancel context.CancelFunc
}

// NewContainer wires every dependency for cfg. When migrateOnly is set it
// stops after the schema migration.
func NewContainer(cfg *config.Config, migrateOnly bool) (*Container, error) {
	c := &Container{
		Config: cfg,
		Clock:  clock.Real(),
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	loggerInstance, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing logger: %w", err)
	}
	c.Logger = loggerInstance

	c.Logger.Info("Initializing Roomly API dependencies", zap.String("runMode", cfg.Server.RunMode))

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	if migrateOnly {
		return c, nil
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("error initializing infrastructure: %w", err)
	}

	c.initRepositories()

	c.initWebSocket()

	if err := c.initEvents(); err != nil {
		return nil, fmt.Errorf("error initializing events: %w", err)
	}

	c.initUseCases()

	c.initMiddleware()

	c.initControllers()

	c.initBackgroundJobs()

	c.Logger.Info("All dependencies initialized successfully")

	return c, nil
}
