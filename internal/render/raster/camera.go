// Package raster draws a scene through a perspective camera by projecting its
// polygons to screen-space triangles, painter's-algorithm style.
package raster

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/drivetoy/internal/camera"
)

// Camera is a perspective camera.
type Camera struct {
	FOV    float64 // Vertical field of view in degrees
	Near   float64
	Far    float64
	Aspect float64
	Pose   camera.Pose

	width, height int
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera(fov, near, far float64) *Camera {
	return &Camera{
		FOV:    fov,
		Near:   near,
		Far:    far,
		Aspect: 1,
		Pose:   camera.Pose{Target: mgl64.Vec3{0, 0, -1}},
		width:  1,
		height: 1,
	}
}

// Resize sets the viewport size and updates the aspect ratio to match.
// Degenerate sizes are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width = width
	c.height = height
	c.Aspect = float64(width) / float64(height)
}

// Viewport returns the size set by the last Resize.
func (c *Camera) Viewport() (width, height int) {
	return c.width, c.height
}

// SetPose moves the camera.
func (c *Camera) SetPose(p camera.Pose) {
	c.Pose = p
}

// Projection returns the camera-to-clip matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns the world-to-clip matrix.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.Pose.View())
}

// Project maps a world point to screen pixels. ok is false when the point is
// behind the near plane.
func (c *Camera) Project(p mgl64.Vec3) (x, y float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip[2] < -clip[3] {
		return 0, 0, false
	}
	x, y = c.toScreen(clip)
	return x, y, true
}

func (c *Camera) toScreen(clip mgl64.Vec4) (x, y float64) {
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	x = (ndcX + 1) / 2 * float64(c.width)
	y = (1 - ndcY) / 2 * float64(c.height)
	return x, y
}
