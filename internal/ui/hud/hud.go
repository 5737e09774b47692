// Package hud draws the driving readout: speed, heading, position and a
// small compass, on top of the 3D view.
package hud

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/vehicle"
)

// Config defines what to display in the HUD
type Config struct {
	ShowPosition bool    // Show world position
	ShowCompass  bool    // Show heading compass
	Position     string  // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity      float64 // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *Config {
	return &Config{
		ShowPosition: true,
		ShowCompass:  true,
		Position:     "top-left",
		Opacity:      0.6,
	}
}

// Readout is the data shown for one frame.
type Readout struct {
	State    vehicle.State
	MaxSpeed float64
	Paused   bool
	Distance float64
}

const (
	lineHeight    = 16
	padding       = 10
	inset         = 8
	compassRadius = 18
	minPanelWidth = 2*compassRadius + 2*inset
)

// panelColor is the background tint as 0-1 channels.
var panelColor = struct{ R, G, B float32 }{0.08, 0.08, 0.12}

// HUD manages the heads-up display
type HUD struct {
	config       *Config
	renderer     render.Renderer
	screenWidth  int
	screenHeight int

	white render.Image
}

// New creates a new HUD with the given configuration
func New(config *Config, r render.Renderer, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Lines returns the text rows for r.
func (h *HUD) Lines(r Readout) []string {
	lines := []string{
		fmt.Sprintf("Speed: %+.3f / %.3f", r.State.Speed, r.MaxSpeed),
		fmt.Sprintf("Heading: %.1f deg", HeadingDegrees(r.State.Heading)),
	}
	if h.config.ShowPosition {
		lines = append(lines,
			fmt.Sprintf("Pos: %.1f, %.1f", r.State.Position[0], r.State.Position[1]),
			fmt.Sprintf("Odometer: %.1f", r.Distance))
	}
	if r.Paused {
		lines = append(lines, "PAUSED (P to resume)")
	}
	return lines
}

// PanelSize returns the background panel size that fits lines and the compass.
func (h *HUD) PanelSize(lines []string) (width, height int) {
	width = minPanelWidth
	for _, line := range lines {
		w, _ := h.renderer.MeasureText(line, 1)
		width = max(width, w+2*inset)
	}

	height = len(lines)*lineHeight + 2*inset
	if h.config.ShowCompass {
		height += 2*compassRadius + inset
	}
	return width, height
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image, r Readout) {
	lines := h.Lines(r)

	width, height := h.PanelSize(lines)
	x, y := h.calculatePosition(width, height)
	h.drawPanel(screen, x, y, width, height)

	currentY := y + inset
	for _, line := range lines {
		h.renderer.DrawText(screen, line, x+inset, currentY, color.RGBA{255, 255, 255, 255}, 1)
		currentY += lineHeight
	}

	if h.config.ShowCompass {
		cx := float32(x + inset + compassRadius)
		cy := float32(currentY + 4 + compassRadius)
		h.drawCompass(screen, cx, cy, r.State.Heading)
	}
}

// HeadingDegrees maps an unbounded heading in radians to [0, 360).
func HeadingDegrees(heading float64) float64 {
	deg := math.Mod(heading*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// CompassNeedle returns the needle tip offset for heading on a screen whose
// up is the world's -Z.
func CompassNeedle(heading, radius float64) (dx, dy float64) {
	return -math.Sin(heading) * radius, -math.Cos(heading) * radius
}

func (h *HUD) drawCompass(screen render.Image, cx, cy float32, heading float64) {
	h.renderer.StrokeCircle(screen, cx, cy, compassRadius, 2, color.RGBA{200, 200, 220, 255})
	dx, dy := CompassNeedle(heading, compassRadius-4)
	h.renderer.FillCircle(screen, cx+float32(dx), cy+float32(dy), 4, color.RGBA{255, 80, 80, 255})
	h.renderer.FillCircle(screen, cx, cy, 2, color.RGBA{200, 200, 220, 255})
}

// calculatePosition returns the top-left corner of the HUD panel
func (h *HUD) calculatePosition(panelWidth, panelHeight int) (int, int) {
	switch h.config.Position {
	case "top-right":
		return h.screenWidth - panelWidth - padding, padding
	case "bottom-left":
		return padding, h.screenHeight - panelHeight - padding
	case "bottom-right":
		return h.screenWidth - panelWidth - padding, h.screenHeight - panelHeight - padding
	default: // "top-left"
		return padding, padding
	}
}

// drawPanel draws the semi-transparent background panel
func (h *HUD) drawPanel(screen render.Image, x, y, w, ht int) {
	if h.white == nil {
		h.white = h.renderer.NewImage(1, 1)
		h.white.Fill(color.White)
	}

	// Vertex colours are straight alpha.
	alpha := float32(h.config.Opacity)
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+ht)

	vertex := func(px, py float32) render.Vertex {
		return render.Vertex{
			DstX: px, DstY: py,
			SrcX: 0.5, SrcY: 0.5,
			ColorR: panelColor.R, ColorG: panelColor.G, ColorB: panelColor.B, ColorA: alpha,
		}
	}
	vertices := []render.Vertex{vertex(x0, y0), vertex(x1, y0), vertex(x1, y1), vertex(x0, y1)}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2, 0, 2, 3}, h.white, nil)
}

// Close releases the panel source image.
func (h *HUD) Close() {
	if h.white != nil {
		h.white.Dispose()
		h.white = nil
	}
}
