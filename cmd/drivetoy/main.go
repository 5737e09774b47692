package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chosenoffset.com/drivetoy/internal/game"
	"chosenoffset.com/drivetoy/internal/logging"
	ebitenrender "chosenoffset.com/drivetoy/internal/render/ebiten"
	"chosenoffset.com/drivetoy/internal/simulation"
	"chosenoffset.com/drivetoy/internal/telemetry"
)

func main() {
	configDir := pflag.String("config", ".", "directory containing "+simulation.ConfigFileName)
	pflag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlag("log.level", pflag.Lookup("log-level")); err != nil {
		bootLog := logging.New(os.Stderr, "info")
		bootLog.Fatal().Err(err).Msg("Failed to bind flags")
	}

	cfg, err := simulation.Load(v, *configDir)
	if err != nil {
		bootLog := logging.New(os.Stderr, "info")
		bootLog.Error().Err(err).Str("dir", *configDir).Msg("Failed to load config")
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level)

	rec, err := telemetry.NewGlobal(cfg.Telemetry.Enabled)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create telemetry instruments")
		os.Exit(1)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.New(context.Background(), cfg, renderer, inputMgr, rec, logger)
	defer g.Close()
	manager := game.NewManager(g, inputMgr, logger)

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.Loop.TPS)

	logger.Info().Int("tps", cfg.Loop.TPS).Msg("Starting drive")
	if err := engine.RunGame(manager); err != nil {
		logger.Error().Err(err).Msg("Game loop failed")
		g.Close()
		os.Exit(1)
	}
	logger.Info().Msg("Shut down cleanly")
}
