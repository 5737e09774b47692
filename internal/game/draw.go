package game

import (
	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/ui/hud"
)

// Draw renders the drive to the screen.
func (g *Game) Draw(screen render.Image) {
	g.FrameCount++

	// The screen can differ from the last Layout while the window is resizing.
	if w, h := screen.Size(); w != g.ScreenWidth || h != g.ScreenHeight {
		g.Resize(w, h)
	}

	// Sky first; the ground plane never reaches the horizon line.
	screen.Fill(g.Drive.Background)
	g.LastStats = g.Rasterizer.Render(screen, g.Drive.Scene, g.Camera)

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen render.Image) {
	if g.GameHUD == nil {
		return
	}
	g.GameHUD.Draw(screen, hud.Readout{
		State:    g.Vehicle,
		MaxSpeed: g.Params.MaxSpeed,
		Paused:   g.Paused,
		Distance: g.Telemetry.Distance(),
	})
}
