package raster

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/render/lighting"
	"chosenoffset.com/drivetoy/internal/scene"
)

// Stats counts what happened to the scene's polygons in one Render call.
type Stats struct {
	Polygons  int // Polygons in the scene
	Culled    int // Dropped for facing away from the camera
	Clipped   int // Dropped entirely behind the near plane
	Triangles int // Triangles submitted
	Batches   int // DrawTriangles calls
}

// shape is a polygon after clipping, in screen space.
type shape struct {
	points []mgl64.Vec2
	depth  float64 // Mean clip-space w, i.e. distance along the view axis
	layer  int
	color  color.NRGBA
}

// Rasterizer turns scene polygons into triangles on a render.Image.
// Buffers are reused across frames.
type Rasterizer struct {
	renderer render.Renderer
	white    render.Image

	polys    []scene.Polygon
	shapes   []shape
	vertices []render.Vertex
	indices  []uint16
}

// NewRasterizer returns a rasterizer that allocates images through r.
func NewRasterizer(r render.Renderer) *Rasterizer {
	return &Rasterizer{renderer: r}
}

// Close releases the source image. The next Render allocates a new one.
func (r *Rasterizer) Close() {
	if r.white != nil {
		r.white.Dispose()
		r.white = nil
	}
}

// Render draws sc as seen by cam onto dst. It does not clear dst.
func (r *Rasterizer) Render(dst render.Image, sc *scene.Scene, cam *Camera) Stats {
	var stats Stats

	r.polys = sc.Polygons(r.polys[:0])
	r.shapes = r.shapes[:0]
	stats.Polygons = len(r.polys)

	vp := cam.ViewProjection()
	eye := cam.Pose.Eye

	for _, p := range r.polys {
		if len(p.Points) < 3 {
			continue
		}
		if p.Cull && p.Normal.Dot(eye.Sub(p.Points[0])) <= 0 {
			stats.Culled++
			continue
		}

		clip := make([]mgl64.Vec4, len(p.Points))
		for i, pt := range p.Points {
			clip[i] = vp.Mul4x1(pt.Vec4(1))
		}
		clip = ClipNear(clip)
		if len(clip) < 3 {
			stats.Clipped++
			continue
		}

		s := shape{
			points: make([]mgl64.Vec2, len(clip)),
			layer:  p.Layer,
			color:  shade(sc.Lights, p),
		}
		for i, c := range clip {
			x, y := cam.toScreen(c)
			s.points[i] = mgl64.Vec2{x, y}
			s.depth += c[3]
		}
		s.depth /= float64(len(clip))
		r.shapes = append(r.shapes, s)
	}

	// Lower layers first, then far to near within a layer.
	sort.SliceStable(r.shapes, func(i, j int) bool {
		a, b := r.shapes[i], r.shapes[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		return a.depth > b.depth
	})

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, s := range r.shapes {
		if len(r.vertices)+len(s.points) > render.MaxVertices {
			r.flush(dst)
			stats.Batches++
		}
		r.appendFan(s)
		stats.Triangles += len(s.points) - 2
	}
	if len(r.indices) > 0 {
		r.flush(dst)
		stats.Batches++
	}

	return stats
}

func shade(lights *lighting.Manager, p scene.Polygon) color.NRGBA {
	if lights == nil {
		return p.Color
	}
	return lights.Shade(p.Color, p.Normal)
}

// appendFan triangulates a convex polygon around its first point.
func (r *Rasterizer) appendFan(s shape) {
	base := uint16(len(r.vertices))
	cr := float32(s.color.R) / 255
	cg := float32(s.color.G) / 255
	cb := float32(s.color.B) / 255
	ca := float32(s.color.A) / 255

	for _, pt := range s.points {
		r.vertices = append(r.vertices, render.Vertex{
			DstX:   float32(pt[0]),
			DstY:   float32(pt[1]),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 1; i+1 < len(s.points); i++ {
		r.indices = append(r.indices, base, base+uint16(i), base+uint16(i+1))
	}
}

func (r *Rasterizer) flush(dst render.Image) {
	if r.white == nil {
		r.white = r.renderer.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	dst.DrawTriangles(r.vertices, r.indices, r.white, &render.DrawTrianglesOptions{AntiAlias: false})
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// ClipNear clips a convex polygon in clip space against the near plane
// (z >= -w) using Sutherland-Hodgman. The result may be empty.
func ClipNear(in []mgl64.Vec4) []mgl64.Vec4 {
	if len(in) == 0 {
		return nil
	}

	out := make([]mgl64.Vec4, 0, len(in)+1)
	prev := in[len(in)-1]
	prevD := prev[2] + prev[3]

	for _, cur := range in {
		curD := cur[2] + cur[3]
		switch {
		case curD >= 0 && prevD >= 0:
			out = append(out, cur)
		case curD >= 0 && prevD < 0:
			out = append(out, lerp(prev, cur, prevD/(prevD-curD)), cur)
		case curD < 0 && prevD >= 0:
			out = append(out, lerp(prev, cur, prevD/(prevD-curD)))
		}
		prev, prevD = cur, curD
	}

	return out
}

func lerp(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
