package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/drivetoy/internal/camera"
)

// Step advances s by dt ticks under the given controls and returns the new state.
func Step(s State, c Controls, p Params, dt float64) State {
	// Acceleration; both pedals held cancel out.
	if c.Forward {
		s.Speed += p.Accel * dt
	}
	if c.Backward {
		s.Speed -= p.Accel * dt
	}

	s.Speed = math.Max(-p.MaxSpeed, math.Min(p.MaxSpeed, s.Speed))

	// Turning works at any speed, including standing still.
	if c.Left {
		s.Heading += p.TurnSpeed * dt
	}
	if c.Right {
		s.Heading -= p.TurnSpeed * dt
	}

	if !c.Throttle() {
		s.Speed = coast(s.Speed, p.Friction*dt, p.StopEpsilon)
	}

	fwd := s.Forward()
	s.Position[0] += fwd[0] * s.Speed * dt
	s.Position[1] += fwd[2] * s.Speed * dt

	return s
}

// coast bleeds speed toward zero without crossing it.
func coast(speed, friction, epsilon float64) float64 {
	switch {
	case speed > 0:
		speed = math.Max(0, speed-friction)
	case speed < 0:
		speed = math.Min(0, speed+friction)
	}
	if math.Abs(speed) < epsilon {
		return 0
	}
	return speed
}

// ChaseRig describes where the chase camera sits relative to the car.
type ChaseRig struct {
	// Offset is in the car's local frame: +Y up, +Z behind.
	Offset mgl64.Vec3
	// RideHeight is the fixed Y of the car's centre.
	RideHeight float64
}

// DefaultChaseRig returns a camera 5 units up and 10 behind a car riding at 0.5.
func DefaultChaseRig() ChaseRig {
	return ChaseRig{
		Offset:     mgl64.Vec3{0, 5, 10},
		RideHeight: 0.5,
	}
}

// CarPosition returns the car's centre in world space.
func (r ChaseRig) CarPosition(s State) mgl64.Vec3 {
	return mgl64.Vec3{s.Position[0], r.RideHeight, s.Position[1]}
}

// Chase returns the camera pose for s: the rig offset rotated by the heading,
// looking straight at the car with no smoothing.
func Chase(s State, r ChaseRig) camera.Pose {
	car := r.CarPosition(s)
	offset := mgl64.Rotate3DY(s.Heading).Mul3x1(r.Offset)
	return camera.Pose{
		Eye:    car.Add(offset),
		Target: car,
	}
}
