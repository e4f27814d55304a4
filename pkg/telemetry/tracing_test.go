package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestTracingConfig_Normalized(t *testing.T) {
	t.Parallel()

	c := TracingConfig{SampleRatio: -1}.normalized()
	require.Equal(t, defaultEndpoint, c.Endpoint)
	require.Zero(t, c.SampleRatio)

	c = TracingConfig{Endpoint: "collector:4318", SampleRatio: 7}.normalized()
	require.Equal(t, "collector:4318", c.Endpoint)
	require.Equal(t, 1.0, c.SampleRatio)
}

func TestTracingConfig_ResourceAttributes(t *testing.T) {
	t.Parallel()

	res := TracingConfig{
		ServiceName: "records",
		Attributes:  map[string]string{"messaging.destination": "topic-a"},
	}.resource()

	set := res.Set()
	v, ok := set.Value(attribute.Key("service.name"))
	require.True(t, ok)
	require.Equal(t, "records", v.AsString())

	v, ok = set.Value(attribute.Key("messaging.destination"))
	require.True(t, ok)
	require.Equal(t, "topic-a", v.AsString())
}

func TestSetupTracing_InstallsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := SetupTracing(context.Background(), TracingConfig{ServiceName: "records-test", SampleRatio: 0})
	require.NoError(t, err)
	require.NotSame(t, prev, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, shutdown(ctx))
}
