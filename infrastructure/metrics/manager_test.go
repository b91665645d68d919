package metrics

import (
	"context"
	"testing"

	"github.com/hilthontt/roomly/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestManager() (Manager, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	meter := noop.NewMeterProvider().Meter("test")
	return NewMetricsManager(meter, &logger.Logger{Log: zap.New(core)}), logs
}

func TestRegisteredInstrumentsRecordSilently(t *testing.T) {
	m, logs := newTestManager()
	ctx := context.Background()

	m.NewCounter("bookings_created_total", "Bookings created")
	m.NewUpDownCounter("active_websocket_connections", "Open sockets")
	m.NewHistogram("http_request_duration_seconds", "Request duration", 0.1, 1)
	m.NewGauge("app_go_routines", "Goroutines")

	m.IncrementCounter(ctx, "bookings_created_total", "room", "r1")
	m.AddCounter(ctx, "bookings_created_total", 3)
	m.DeltaUpDownCounter(ctx, "active_websocket_connections", -1)
	m.RecordHistogram(ctx, "http_request_duration_seconds", 0.25, "method", "GET")
	m.SetGauge("app_go_routines", 12)

	assert.Zero(t, logs.Len())
}

func TestUnknownInstrumentIsLogged(t *testing.T) {
	m, logs := newTestManager()

	m.IncrementCounter(context.Background(), "missing_total")

	entries := logs.FilterMessage("metric not registered").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "missing_total", entries[0].ContextMap()["metric"])
	}
}

func TestToAttributes(t *testing.T) {
	attrs := toAttributes([]string{"method", "GET", "status", "200", "dangling"})
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("method", "GET"),
		attribute.String("status", "200"),
	}, attrs)
}
