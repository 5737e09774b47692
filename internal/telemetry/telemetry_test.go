package telemetry

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"chosenoffset.com/drivetoy/internal/vehicle"
)

func TestRecorder_Tick(t *testing.T) {
	r, err := New(noop.Meter{})
	require.NoError(t, err)

	ctx := context.Background()
	a := vehicle.State{}
	b := vehicle.State{Speed: -0.3, Position: mgl64.Vec2{3, 4}}

	r.Tick(ctx, a, b)
	r.Tick(ctx, b, b)

	assert.Equal(t, int64(2), r.Ticks())
	assert.InDelta(t, 5.0, r.Distance(), 1e-12)
}

func TestNewGlobal(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		r, err := NewGlobal(enabled)
		require.NoError(t, err)
		r.Reset(context.Background())
		assert.Zero(t, r.Ticks())
	}
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	got := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		assert.Equal(t, MeterName, sm.Scope.Name)
		for _, m := range sm.Metrics {
			got[m.Name] = m.Data
		}
	}
	return got
}

func TestRecorder_ExportsInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	r, err := New(provider.Meter(MeterName))
	require.NoError(t, err)

	ctx := context.Background()
	a := vehicle.State{}
	b := vehicle.State{Speed: -0.3, Position: mgl64.Vec2{3, 4}}
	r.Tick(ctx, a, b)
	r.Tick(ctx, b, b)
	r.Reset(ctx)

	got := collect(t, reader)

	ticks, ok := got["drivetoy.ticks"].(metricdata.Sum[int64])
	require.True(t, ok, "drivetoy.ticks is an int64 sum")
	require.Len(t, ticks.DataPoints, 1)
	assert.Equal(t, int64(2), ticks.DataPoints[0].Value)
	assert.True(t, ticks.IsMonotonic)

	distance, ok := got["drivetoy.distance"].(metricdata.Sum[float64])
	require.True(t, ok, "drivetoy.distance is a float64 sum")
	require.Len(t, distance.DataPoints, 1)
	assert.InDelta(t, 5.0, distance.DataPoints[0].Value, 1e-12)

	speed, ok := got["drivetoy.speed"].(metricdata.Histogram[float64])
	require.True(t, ok, "drivetoy.speed is a float64 histogram")
	require.Len(t, speed.DataPoints, 1)
	assert.Equal(t, uint64(2), speed.DataPoints[0].Count)
	assert.InDelta(t, 0.6, speed.DataPoints[0].Sum, 1e-12, "absolute speed is recorded")

	resets, ok := got["drivetoy.resets"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, resets.DataPoints, 1)
	assert.Equal(t, int64(1), resets.DataPoints[0].Value)
}
