package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/0xsj/overwatch-pkg/log"

	"github.com/0xsj/overwatch-kernel/internal/config"
)

func TestInitTracing_Disabled(t *testing.T) {
	previous := otel.GetTracerProvider()

	shutdown, err := InitTracing(context.Background(), config.TelemetryConfig{}, log.NewPretty(log.DefaultConfig()))

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, previous, otel.GetTracerProvider())
}

func TestInitTracing_StdoutExporter(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	cfg := config.TelemetryConfig{Enabled: true, ServiceName: "kernel-test"}
	shutdown, err := InitTracing(context.Background(), cfg, log.NewPretty(log.DefaultConfig()))
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestNewResource(t *testing.T) {
	res := newResource(config.TelemetryConfig{ServiceName: "kernel", Environment: "test"})

	values := map[string]string{}
	for _, kv := range res.Attributes() {
		values[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "kernel", values["service.name"])
	assert.Equal(t, "test", values["deployment.environment"])
}
