package dependency

import (
	"github.com/hilthontt/roomly/infrastructure/events"
	"github.com/hilthontt/roomly/infrastructure/websocket"
	"go.uber.org/zap"
)

func (c *Container) initWebSocket() {
	c.WSRoomManager = websocket.NewRoomManager()
	c.WSCore = websocket.NewCore(c.WSRoomManager, c.Logger, c.MetricsManager)

	go c.WSCore.Run(c.ctx)

	c.Logger.Info("WebSocket components initialized successfully")
}

func (c *Container) initEvents() error {
	sinks := []events.Sink{
		events.NewAuditLogSink(c.AuditLogRepo),
		websocket.NewHubSink(c.WSCore),
	}

	if url := c.Config.Events.AmqpURL; url != "" {
		amqpSink, err := events.NewAMQPSink(url, c.Config.Events.Exchange)
		if err != nil {
			return err
		}
		c.amqpSink = amqpSink
		sinks = append(sinks, amqpSink)
		c.Logger.Info("AMQP event sink enabled", zap.String("exchange", c.Config.Events.Exchange))
	}

	c.EventPublisher = events.NewEventPublisher(c.Config.Events.BufferSize, c.Logger, sinks...)
	c.EventPublisher.Start()

	c.Logger.Info("Event publisher started", zap.Int("sinks", len(sinks)))
	return nil
}
