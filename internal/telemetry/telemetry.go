// Package telemetry records per-tick drive metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"chosenoffset.com/drivetoy/internal/vehicle"
)

// MeterName is the instrumentation scope for every instrument.
const MeterName = "chosenoffset.com/drivetoy"

// Recorder holds the drive instruments.
type Recorder struct {
	ticks    metric.Int64Counter
	distance metric.Float64Counter
	speed    metric.Float64Histogram
	resets   metric.Int64Counter

	// Totals mirror what was recorded so the HUD can show them.
	totalTicks    int64
	totalDistance float64
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*Recorder, error) {
	ticks, err := meter.Int64Counter("drivetoy.ticks",
		metric.WithDescription("Simulation ticks advanced"))
	if err != nil {
		return nil, fmt.Errorf("failed to create tick counter: %w", err)
	}

	distance, err := meter.Float64Counter("drivetoy.distance",
		metric.WithDescription("Ground distance travelled"),
		metric.WithUnit("{unit}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create distance counter: %w", err)
	}

	speed, err := meter.Float64Histogram("drivetoy.speed",
		metric.WithDescription("Absolute speed per tick"),
		metric.WithUnit("{unit}/{tick}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create speed histogram: %w", err)
	}

	resets, err := meter.Int64Counter("drivetoy.resets",
		metric.WithDescription("Vehicle resets"))
	if err != nil {
		return nil, fmt.Errorf("failed to create reset counter: %w", err)
	}

	return &Recorder{
		ticks:    ticks,
		distance: distance,
		speed:    speed,
		resets:   resets,
	}, nil
}

// NewGlobal uses the global meter provider when enabled, otherwise a no-op meter.
func NewGlobal(enabled bool) (*Recorder, error) {
	if !enabled {
		return New(noop.Meter{})
	}
	return New(otel.Meter(MeterName))
}

// Tick records one step from prev to next.
func (r *Recorder) Tick(ctx context.Context, prev, next vehicle.State) {
	d := next.Position.Sub(prev.Position).Len()

	r.ticks.Add(ctx, 1)
	r.distance.Add(ctx, d)
	r.speed.Record(ctx, math.Abs(next.Speed))

	r.totalTicks++
	r.totalDistance += d
}

// Reset records a vehicle reset.
func (r *Recorder) Reset(ctx context.Context) {
	r.resets.Add(ctx, 1)
}

// Ticks returns the number of recorded ticks.
func (r *Recorder) Ticks() int64 {
	return r.totalTicks
}

// Distance returns the total recorded distance.
func (r *Recorder) Distance() float64 {
	return r.totalDistance
}
