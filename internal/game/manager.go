package game

import (
	"github.com/rs/zerolog"

	"chosenoffset.com/drivetoy/internal/render"
)

// Manager is the render.Game handed to the engine. It owns the session keys
// and window layout and leaves driving to Game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Game         *Game
	InputMgr     render.InputManager
	Logger       zerolog.Logger
}

// NewManager creates a manager around g.
func NewManager(g *Game, in render.InputManager, logger zerolog.Logger) *Manager {
	return &Manager{
		ScreenWidth:  g.ScreenWidth,
		ScreenHeight: g.ScreenHeight,
		Game:         g,
		InputMgr:     in,
		Logger:       logger,
	}
}

// Update handles the session keys, then advances the drive.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		m.Logger.Info().
			Int64("ticks", m.Game.Telemetry.Ticks()).
			Float64("distance", m.Game.Telemetry.Distance()).
			Msg("Escape pressed, shutting down")
		return render.ErrTerminated
	}
	if m.InputMgr.IsKeyJustPressed(render.KeyP) {
		m.Game.TogglePause()
	}
	if m.InputMgr.IsKeyJustPressed(render.KeyR) {
		m.Game.Reset()
	}
	return m.Game.Update()
}

// Draw draws the current frame.
func (m *Manager) Draw(screen render.Image) {
	m.Game.Draw(screen)
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.Game.Resize(outsideWidth, outsideHeight)
		m.Logger.Debug().Int("width", outsideWidth).Int("height", outsideHeight).Msg("Window resized")
	}
	return outsideWidth, outsideHeight
}
