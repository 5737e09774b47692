package lighting

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// LightSource represents a single light in the world
type LightSource struct {
	Direction mgl64.Vec3  // Unit vector pointing from the surface toward the light
	Intensity float64     // Light intensity (0.0 to 1.0)
	Color     color.NRGBA // Light color
}

// Manager handles all light sources in the scene
type Manager struct {
	ambient     float64     // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
	ambientTint color.NRGBA // Ambient light color
	directional []LightSource
}

// NewManager creates a new lighting manager with white ambient light at full intensity
func NewManager() *Manager {
	return &Manager{
		ambient:     1,
		ambientTint: color.NRGBA{255, 255, 255, 255},
	}
}

// SetAmbient sets the global ambient light level and color
func (m *Manager) SetAmbient(level float64, tint color.NRGBA) {
	m.ambient = level
	m.ambientTint = tint
}

// Ambient returns the current ambient light level
func (m *Manager) Ambient() float64 {
	return m.ambient
}

// AddDirectional adds a light placed at position shining toward target.
// Like a sun, only the direction matters, not the distance.
func (m *Manager) AddDirectional(position, target mgl64.Vec3, intensity float64, col color.NRGBA) {
	dir := position.Sub(target)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 1, 0}
	}
	m.directional = append(m.directional, LightSource{
		Direction: dir.Normalize(),
		Intensity: intensity,
		Color:     col,
	})
}

// Directional returns all directional lights
func (m *Manager) Directional() []LightSource {
	return m.directional
}

// Shade returns base lit by the ambient light plus every directional light
// falling on a surface with the given unit normal. Channels saturate at 255.
func (m *Manager) Shade(base color.NRGBA, normal mgl64.Vec3) color.NRGBA {
	r := m.ambient * float64(m.ambientTint.R) / 255
	g := m.ambient * float64(m.ambientTint.G) / 255
	b := m.ambient * float64(m.ambientTint.B) / 255

	for _, l := range m.directional {
		lambert := normal.Dot(l.Direction)
		if lambert <= 0 {
			continue
		}
		k := lambert * l.Intensity
		r += k * float64(l.Color.R) / 255
		g += k * float64(l.Color.G) / 255
		b += k * float64(l.Color.B) / 255
	}

	return color.NRGBA{
		R: channel(base.R, r),
		G: channel(base.G, g),
		B: channel(base.B, b),
		A: base.A,
	}
}

func channel(base uint8, light float64) uint8 {
	v := float64(base) * light
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}
