package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"synergyai.app/internal/config"
)

func TestNewTracerProvider_ResourceAndSampling(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	cfg := &config.TracingConfig{ServiceName: "synergy-cache", Environment: "test", SampleRatio: 1}
	tp := newTracerProvider(cfg, sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "check")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spans[0].Resource().Attributes()
	assert.Contains(t, attrs, attribute.String("service.name", "synergy-cache"))
	assert.Contains(t, attrs, attribute.String("deployment.environment", "test"))
}

func TestNewTracerProvider_ZeroRatioDropsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	cfg := &config.TracingConfig{ServiceName: "synergy-cache", SampleRatio: 0}
	tp := newTracerProvider(cfg, sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "check")
	span.End()

	assert.Empty(t, recorder.Ended())
}
