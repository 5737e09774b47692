// Package rendertest provides in-memory render backends for tests that must
// not open a window.
package rendertest

import (
	"image/color"

	"chosenoffset.com/drivetoy/internal/render"
)

// DrawCall is one recorded DrawTriangles call.
type DrawCall struct {
	Vertices []render.Vertex
	Indices  []uint16
}

// Image records what was drawn onto it.
type Image struct {
	W, H     int
	Filled   color.Color
	Draws    []DrawCall
	Disposed bool
}

// NewImage returns an image of the given size.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h}
}

func (i *Image) Size() (int, int)     { return i.W, i.H }
func (i *Image) Fill(clr color.Color) { i.Filled = clr }
func (i *Image) Dispose()             { i.Disposed = true }

// DrawTriangles copies and records the call.
func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	i.Draws = append(i.Draws, DrawCall{
		Vertices: append([]render.Vertex(nil), vertices...),
		Indices:  append([]uint16(nil), indices...),
	})
}

// Triangles returns the number of triangles drawn so far.
func (i *Image) Triangles() int {
	n := 0
	for _, d := range i.Draws {
		n += len(d.Indices) / 3
	}
	return n
}

// Text is one recorded DrawText call.
type Text struct {
	Text string
	X, Y int
}

// Renderer hands out Images and records text and circles.
type Renderer struct {
	Images  []*Image
	Texts   []Text
	Circles int
}

func (r *Renderer) NewImage(w, h int) render.Image {
	img := NewImage(w, h)
	r.Images = append(r.Images, img)
	return img
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Circles++
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.Circles++
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, Text{Text: text, X: x, Y: y})
}

func (r *Renderer) MeasureText(text string, scale float64) (int, int) {
	return int(float64(6*len(text)) * scale), int(16 * scale)
}

// Input is a scripted keyboard.
type Input struct {
	pressed     map[render.Key]bool
	justPressed map[render.Key]bool
	Reads       int
}

// NewInput returns a keyboard with nothing pressed.
func NewInput() *Input {
	return &Input{
		pressed:     make(map[render.Key]bool),
		justPressed: make(map[render.Key]bool),
	}
}

// Press holds k down; it counts as just pressed until the next EndTick.
func (in *Input) Press(k render.Key) {
	if !in.pressed[k] {
		in.justPressed[k] = true
	}
	in.pressed[k] = true
}

// Release lets k go.
func (in *Input) Release(k render.Key) {
	in.pressed[k] = false
	in.justPressed[k] = false
}

// EndTick clears the just-pressed flags, as a backend does between ticks.
func (in *Input) EndTick() {
	clear(in.justPressed)
}

func (in *Input) IsKeyPressed(k render.Key) bool {
	in.Reads++
	return in.pressed[k]
}

func (in *Input) IsKeyJustPressed(k render.Key) bool {
	return in.justPressed[k]
}
