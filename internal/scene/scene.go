package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/drivetoy/internal/render/lighting"
)

// Layers are drawn in ascending order; depth sorting happens within a layer.
const (
	LayerGround = iota
	LayerObjects
)

// Object places a mesh in the world.
type Object struct {
	Name      string
	Mesh      *Mesh
	Color     color.NRGBA
	Layer     int
	Cull      bool // Skip faces pointing away from the camera
	Position  mgl64.Vec3
	RotationY float64
}

// SetTransform moves the object and sets its yaw about +Y.
func (o *Object) SetTransform(position mgl64.Vec3, rotationY float64) {
	o.Position = position
	o.RotationY = rotationY
}

// Model returns the mesh-to-world matrix.
func (o *Object) Model() mgl64.Mat4 {
	return mgl64.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(mgl64.HomogRotate3DY(o.RotationY))
}

// Polygon is one face of an object in world space.
type Polygon struct {
	Points []mgl64.Vec3
	Normal mgl64.Vec3
	Color  color.NRGBA
	Layer  int
	Cull   bool
}

// AppendPolygons appends the object's faces, transformed to world space, to dst.
func (o *Object) AppendPolygons(dst []Polygon) []Polygon {
	if o.Mesh == nil {
		return dst
	}

	model := o.Model()
	rot := mgl64.Rotate3DY(o.RotationY)

	world := make([]mgl64.Vec3, len(o.Mesh.Vertices))
	for i, v := range o.Mesh.Vertices {
		world[i] = model.Mul4x1(v.Vec4(1)).Vec3()
	}

	for _, f := range o.Mesh.Faces {
		pts := make([]mgl64.Vec3, len(f.Indices))
		for i, idx := range f.Indices {
			pts[i] = world[idx]
		}
		dst = append(dst, Polygon{
			Points: pts,
			Normal: rot.Mul3x1(f.Normal),
			Color:  scaleColor(o.Color, f.Shade),
			Layer:  o.Layer,
			Cull:   o.Cull,
		})
	}
	return dst
}

func scaleColor(c color.NRGBA, s float64) color.NRGBA {
	if s == 1 {
		return c
	}
	ch := func(v uint8) uint8 {
		f := float64(v) * s
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return color.NRGBA{ch(c.R), ch(c.G), ch(c.B), c.A}
}

// Scene is everything the renderer draws in one frame.
type Scene struct {
	Background color.NRGBA
	Objects    []*Object
	Lights     *lighting.Manager
}

// Add appends o and returns it.
func (s *Scene) Add(o *Object) *Object {
	s.Objects = append(s.Objects, o)
	return o
}

// Polygons returns every object's faces in world space.
func (s *Scene) Polygons(dst []Polygon) []Polygon {
	for _, o := range s.Objects {
		dst = o.AppendPolygons(dst)
	}
	return dst
}
