// Package game runs one drive: it reads the keyboard, advances the car a
// tick at a time and keeps the chase camera, scene and HUD in sync.
package game

import (
	"context"

	"github.com/rs/zerolog"

	"chosenoffset.com/drivetoy/internal/input"
	"chosenoffset.com/drivetoy/internal/logging"
	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/render/raster"
	"chosenoffset.com/drivetoy/internal/scene"
	"chosenoffset.com/drivetoy/internal/simulation"
	"chosenoffset.com/drivetoy/internal/telemetry"
	"chosenoffset.com/drivetoy/internal/ui/hud"
	"chosenoffset.com/drivetoy/internal/vehicle"
)

// Game holds all drive state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Logger       zerolog.Logger

	// Motion
	Params  vehicle.Params
	Rig     vehicle.ChaseRig
	Vehicle vehicle.State

	// Scene and rendering
	Camera     *raster.Camera
	Drive      *scene.Drive
	Rasterizer *raster.Rasterizer

	// Input
	Tracker  *input.Tracker
	Bindings input.Bindings
	Poller   *input.Poller

	Telemetry *telemetry.Recorder
	GameHUD   *hud.HUD

	// UI state
	Paused bool

	// Debug
	FrameCount int
	LastStats  raster.Stats

	ctx     context.Context
	tickLog zerolog.Logger
}

// New builds a drive from a validated config with the car at spawn.
func New(ctx context.Context, cfg *simulation.Config, r render.Renderer, in render.InputManager, rec *telemetry.Recorder, logger zerolog.Logger) *Game {
	w, h := cfg.Window.Width, cfg.Window.Height
	rig := cfg.ChaseRig()

	cam := raster.NewCamera(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	cam.Resize(w, h)

	tracker := input.NewTracker()
	bindings := input.DefaultBindings()

	g := &Game{
		ScreenWidth:  w,
		ScreenHeight: h,
		Renderer:     r,
		InputMgr:     in,
		Logger:       logger,
		Params:       cfg.Vehicle,
		Rig:          rig,
		Vehicle:      vehicle.Spawn(),
		Camera:       cam,
		Drive: scene.NewDrive(scene.DriveOptions{
			GroundSize:      cfg.Scene.GroundSize,
			GroundDivisions: cfg.Scene.GroundDivisions,
			Checker:         cfg.Scene.Checker,
			RideHeight:      rig.RideHeight,
		}),
		Rasterizer: raster.NewRasterizer(r),
		Tracker:    tracker,
		Bindings:   bindings,
		Poller:     input.NewPoller(in, tracker, bindings, logger),
		Telemetry:  rec,
		GameHUD:    hud.New(nil, r, w, h),
		ctx:        ctx,
		tickLog:    logging.Sampled(logger),
	}
	g.sync()

	logger.Info().
		Int("width", w).
		Int("height", h).
		Float64("maxSpeed", g.Params.MaxSpeed).
		Int("polygons", len(g.Drive.Polygons(nil))).
		Float64("ambient", g.Drive.Lights.Ambient()).
		Int("lights", len(g.Drive.Lights.Directional())).
		Msg("Drive ready")
	return g
}

// Update handles one tick of input and motion.
func (g *Game) Update() error {
	g.Poller.Poll()
	controls := g.Bindings.Controls(g.Tracker)

	if g.Paused {
		return nil
	}

	prev := g.Vehicle
	g.Vehicle = vehicle.Step(prev, controls, g.Params, 1)
	g.sync()
	g.Telemetry.Tick(g.ctx, prev, g.Vehicle)

	g.tickLog.Debug().
		Float64("speed", g.Vehicle.Speed).
		Float64("heading", g.Vehicle.Heading).
		Float64("x", g.Vehicle.Position[0]).
		Float64("z", g.Vehicle.Position[1]).
		Msg("Tick")
	return nil
}

// TogglePause freezes or resumes motion. Input is still tracked while paused.
func (g *Game) TogglePause() {
	g.Paused = !g.Paused
	g.Logger.Info().Bool("paused", g.Paused).Msg("Pause toggled")
}

// Reset puts the car back at spawn, at rest, and releases every key.
func (g *Game) Reset() {
	g.Vehicle = vehicle.Spawn()
	g.Tracker.Reset()
	g.sync()
	g.Telemetry.Reset(g.ctx)
	g.Logger.Info().Msg("Vehicle reset")
}

// Resize updates the viewport. Motion state is untouched.
func (g *Game) Resize(width, height int) {
	g.ScreenWidth = width
	g.ScreenHeight = height
	g.Camera.Resize(width, height)
	g.GameHUD.SetScreenSize(width, height)
}

// Close releases the images held by the renderer and the HUD.
func (g *Game) Close() {
	g.Rasterizer.Close()
	g.GameHUD.Close()
}

// sync copies the vehicle state into the car object and the camera.
func (g *Game) sync() {
	g.Drive.Car.SetTransform(g.Rig.CarPosition(g.Vehicle), g.Vehicle.Heading)
	g.Camera.SetPose(vehicle.Chase(g.Vehicle, g.Rig))
}
