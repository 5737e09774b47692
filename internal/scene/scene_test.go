package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_NormalsPointOutward(t *testing.T) {
	m := Box(2, 1, 4)
	require.Len(t, m.Vertices, 8)
	require.Len(t, m.Faces, 6)

	for i, f := range m.Faces {
		require.Len(t, f.Indices, 4)

		var centre mgl64.Vec3
		for _, idx := range f.Indices {
			centre = centre.Add(m.Vertices[idx])
		}
		centre = centre.Mul(0.25)

		assert.Greater(t, centre.Dot(f.Normal), 0.0, "face %d", i)

		// The winding agrees with the normal.
		a, b, c := m.Vertices[f.Indices[0]], m.Vertices[f.Indices[1]], m.Vertices[f.Indices[2]]
		wound := b.Sub(a).Cross(c.Sub(a)).Normalize()
		assert.InDelta(t, 1.0, wound.Dot(f.Normal), 1e-12, "face %d", i)
	}
}

func TestPlane_Tiles(t *testing.T) {
	m := Plane(500, 20, true, 0.5)

	assert.Len(t, m.Vertices, 21*21)
	assert.Len(t, m.Faces, 400)
	assert.Equal(t, mgl64.Vec3{-250, 0, -250}, m.Vertices[0])
	assert.Equal(t, mgl64.Vec3{250, 0, 250}, m.Vertices[len(m.Vertices)-1])

	assert.Equal(t, 1.0, m.Faces[0].Shade)
	assert.Equal(t, 0.5, m.Faces[1].Shade)
	assert.Equal(t, 1.0, m.Faces[2].Shade)
	assert.Equal(t, 0.5, m.Faces[20].Shade, "rows alternate")

	flat := Plane(10, 0, false, 0.5)
	assert.Len(t, flat.Faces, 1, "at least one tile")
	assert.Equal(t, 1.0, flat.Faces[0].Shade)
}

func TestObject_AppendPolygons(t *testing.T) {
	o := &Object{
		Mesh:  Box(2, 1, 4),
		Color: CarColor,
		Layer: LayerObjects,
		Cull:  true,
	}
	o.SetTransform(mgl64.Vec3{10, 0.5, -3}, math.Pi/2)

	polys := o.AppendPolygons(nil)
	require.Len(t, polys, 6)

	// The back face (+Z locally) now faces +X.
	back := polys[0]
	assert.InDelta(t, 1, back.Normal[0], 1e-12)
	assert.InDelta(t, 0, back.Normal[2], 1e-12)
	for _, p := range back.Points {
		assert.InDelta(t, 12, p[0], 1e-12, "half the car length from the centre")
	}

	for _, p := range polys {
		assert.Equal(t, CarColor, p.Color)
		assert.True(t, p.Cull)
		assert.Equal(t, LayerObjects, p.Layer)
	}
}

func TestNewDrive(t *testing.T) {
	d := NewDrive(DriveOptions{GroundSize: 500, GroundDivisions: 4, Checker: true, RideHeight: 0.5})

	assert.Equal(t, SkyColor, d.Background)
	require.Len(t, d.Objects, 2)
	assert.Same(t, d.Ground, d.Objects[0])
	assert.Same(t, d.Car, d.Objects[1])
	assert.Equal(t, mgl64.Vec3{0, 0.5, 0}, d.Car.Position)
	assert.Len(t, d.Lights.Directional(), 1)
	assert.Equal(t, 0.3, d.Lights.Ambient())

	polys := d.Polygons(nil)
	assert.Len(t, polys, 16+6)

	shaded := 0
	for _, p := range polys[:16] {
		assert.Equal(t, LayerGround, p.Layer)
		if p.Color != GroundColor {
			shaded++
		}
	}
	assert.Equal(t, 8, shaded)
}
