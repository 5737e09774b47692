// Package camera holds the camera pose shared between the motion integrator
// and the renderer.
package camera

import "github.com/go-gl/mathgl/mgl64"

// Up is the world's vertical axis.
var Up = mgl64.Vec3{0, 1, 0}

// Pose is where the camera sits and what it looks at.
type Pose struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
}

// View returns the world-to-camera matrix.
func (p Pose) View() mgl64.Mat4 {
	return mgl64.LookAtV(p.Eye, p.Target, Up)
}
