// Package vehicle integrates the car's kinematic motion and derives the chase
// camera from it.
//
// All quantities are in per-tick units: with dt == 1 a call to Step advances
// the car by exactly one nominal 60 Hz tick.
package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Params are the tuning constants for the motion model.
type Params struct {
	MaxSpeed    float64 `mapstructure:"maxSpeed"`
	Accel       float64 `mapstructure:"accel"`
	Friction    float64 `mapstructure:"friction"`
	TurnSpeed   float64 `mapstructure:"turnSpeed"`
	StopEpsilon float64 `mapstructure:"stopEpsilon"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		MaxSpeed:    0.3,
		Accel:       0.01,
		Friction:    0.005,
		TurnSpeed:   0.03,
		StopEpsilon: 0.001,
	}
}

// State is the car's motion state.
type State struct {
	// Speed is signed: positive moves along the heading, negative reverses.
	Speed float64
	// Heading is the yaw about +Y in radians. It is never wrapped.
	Heading float64
	// Position is the horizontal (x, z) coordinate.
	Position mgl64.Vec2
}

// Spawn returns a stationary car at the origin facing -Z.
func Spawn() State {
	return State{}
}

// Controls are the driver inputs for one tick.
type Controls struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Throttle reports whether either longitudinal control is held.
func (c Controls) Throttle() bool {
	return c.Forward || c.Backward
}

// Forward returns the unit vector the car faces in world space.
func (s State) Forward() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(s.Heading), 0, -math.Cos(s.Heading)}
}
