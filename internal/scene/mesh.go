// Package scene describes what gets drawn: meshes, their placement in the
// world and the lights shining on them.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Face is a planar convex polygon over a mesh's vertices.
type Face struct {
	Indices []int      // Counter-clockwise seen from the side Normal points to
	Normal  mgl64.Vec3 // Outward unit normal in mesh space
	Shade   float64    // Multiplier on the object's colour (1 = unchanged)
}

// Mesh is an indexed polygon mesh.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    []Face
}

// Box returns an axis-aligned box centred on the origin.
// width runs along X, height along Y and length along Z.
func Box(width, height, length float64) *Mesh {
	x, y, z := width/2, height/2, length/2

	m := &Mesh{
		Vertices: []mgl64.Vec3{
			{-x, -y, -z}, // 0
			{x, -y, -z},  // 1
			{x, y, -z},   // 2
			{-x, y, -z},  // 3
			{-x, -y, z},  // 4
			{x, -y, z},   // 5
			{x, y, z},    // 6
			{-x, y, z},   // 7
		},
	}

	m.Faces = []Face{
		{Indices: []int{4, 5, 6, 7}, Normal: mgl64.Vec3{0, 0, 1}},  // back (+Z)
		{Indices: []int{1, 0, 3, 2}, Normal: mgl64.Vec3{0, 0, -1}}, // front (-Z)
		{Indices: []int{5, 1, 2, 6}, Normal: mgl64.Vec3{1, 0, 0}},  // right
		{Indices: []int{0, 4, 7, 3}, Normal: mgl64.Vec3{-1, 0, 0}}, // left
		{Indices: []int{7, 6, 2, 3}, Normal: mgl64.Vec3{0, 1, 0}},  // top
		{Indices: []int{0, 1, 5, 4}, Normal: mgl64.Vec3{0, -1, 0}}, // bottom
	}
	for i := range m.Faces {
		m.Faces[i].Shade = 1
	}

	return m
}

// Plane returns a size×size square in the XZ plane facing +Y, split into
// divisions×divisions tiles. With checker set, alternate tiles use
// checkerShade so motion over the ground is visible.
func Plane(size float64, divisions int, checker bool, checkerShade float64) *Mesh {
	if divisions < 1 {
		divisions = 1
	}

	step := size / float64(divisions)
	half := size / 2
	row := divisions + 1

	m := &Mesh{
		Vertices: make([]mgl64.Vec3, 0, row*row),
		Faces:    make([]Face, 0, divisions*divisions),
	}

	for j := 0; j <= divisions; j++ {
		for i := 0; i <= divisions; i++ {
			m.Vertices = append(m.Vertices, mgl64.Vec3{
				-half + float64(i)*step,
				0,
				-half + float64(j)*step,
			})
		}
	}

	up := mgl64.Vec3{0, 1, 0}
	for j := 0; j < divisions; j++ {
		for i := 0; i < divisions; i++ {
			a := j*row + i
			shade := 1.0
			if checker && (i+j)%2 == 1 {
				shade = checkerShade
			}
			// Counter-clockwise from above: -Z is "up" on screen when looking down.
			m.Faces = append(m.Faces, Face{
				Indices: []int{a, a + row, a + row + 1, a + 1},
				Normal:  up,
				Shade:   shade,
			})
		}
	}

	return m
}
