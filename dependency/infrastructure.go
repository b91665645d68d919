package dependency

import (
	"fmt"

	"github.com/hilthontt/roomly/infrastructure/cache"
	"github.com/hilthontt/roomly/infrastructure/jobs"
	"github.com/hilthontt/roomly/infrastructure/metrics"
	"github.com/hilthontt/roomly/infrastructure/metrics/exporters"
	"github.com/hilthontt/roomly/infrastructure/persistence/database"
	"github.com/hilthontt/roomly/infrastructure/persistence/migration"
	"github.com/hilthontt/roomly/infrastructure/websocket"
	"github.com/hilthontt/roomly/presentation/middlewares"
	"go.uber.org/zap"
)

func (c *Container) initDatabase() error {
	if err := database.InitDb(c.Config, c.Logger.Log); err != nil {
		return err
	}
	if err := migration.Up1(database.GetDb(), c.Logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	c.Logger.Info("Database ready")
	return nil
}

func (c *Container) initInfrastructure() error {
	tracerProvider, err := exporters.InitTracerProvider(c.ctx, c.Config)
	if err != nil {
		// Spans go to the global noop provider.
		c.Logger.Error("failed to initialize tracing exporter", zap.Error(err))
	} else {
		c.TracerProvider = tracerProvider
		c.Logger.Info("Tracing initialized",
			zap.String("exporter", c.Config.Jaeger.Exporter),
			zap.String("endpoint", c.Config.Jaeger.Endpoint),
			zap.String("service", c.Config.Jaeger.ServiceName),
		)
	}

	meter, meterProvider, err := exporters.Prometheus(c.Config.Jaeger.ServiceName, c.Config.Jaeger.ServiceVersion)
	if err != nil {
		return fmt.Errorf("failed to initialize Prometheus exporter: %w", err)
	}
	c.MeterProvider = meterProvider
	c.MetricsManager = metrics.NewMetricsManager(meter, c.Logger)

	metrics.RegisterSystemGauges(c.MetricsManager)
	middlewares.RegisterRequestMetrics(c.MetricsManager)
	c.MetricsManager.NewUpDownCounter(websocket.ActiveConnectionsMetric, "Number of active room feed connections")
	c.MetricsManager.NewCounter(websocket.MessagesSentMetric, "Total number of room feed messages sent")

	c.Logger.Info("Metrics initialized successfully")

	if err := cache.InitRedis(c.Config); err != nil {
		return fmt.Errorf("error initializing redis: %w", err)
	}
	c.DistributedCache = cache.NewDistributedCache(cache.GetRedis(), "roomly", cache.DefaultOptions())

	return nil
}

func (c *Container) initBackgroundJobs() {
	c.ParticipantCleanupJob = jobs.NewParticipantCleanupJob(c.Sweeper, c.Logger, c.Config.Cleanup.Interval)

	go c.ParticipantCleanupJob.Start(c.ctx)

	c.Logger.Info("Background jobs started")
}
