// Package simulation loads the tuning and presentation settings for a drive.
// Every key has a default, so the config file is optional.
package simulation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"

	"chosenoffset.com/drivetoy/internal/vehicle"
)

// ConfigFileName is looked up in the config directory.
const ConfigFileName = "drivetoy.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. DRIVETOY_VEHICLE_MAXSPEED.
const EnvPrefix = "DRIVETOY"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings for a drive
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Loop      LoopConfig      `mapstructure:"loop"`
	Vehicle   vehicle.Params  `mapstructure:"vehicle"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Scene     SceneConfig     `mapstructure:"scene"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// WindowConfig defines the initial window
type WindowConfig struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Title     string `mapstructure:"title"`
	Resizable bool   `mapstructure:"resizable"`
}

// LoopConfig defines the game loop rate
type LoopConfig struct {
	TPS int `mapstructure:"tps"` // Update calls per second; motion params are per tick
}

// CameraConfig defines the perspective camera and the chase rig
type CameraConfig struct {
	FOV        float64   `mapstructure:"fov"`        // Vertical field of view in degrees
	Near       float64   `mapstructure:"near"`       // Near clip distance
	Far        float64   `mapstructure:"far"`        // Far clip distance
	Offset     []float64 `mapstructure:"offset"`     // Chase offset in the car's frame (x, y, z)
	RideHeight float64   `mapstructure:"rideHeight"` // Y of the car's centre
}

// SceneConfig defines the ground
type SceneConfig struct {
	GroundSize      float64 `mapstructure:"groundSize"`      // Side length of the square ground
	GroundDivisions int     `mapstructure:"groundDivisions"` // Tiles per side
	Checker         bool    `mapstructure:"checker"`         // Alternate tile shades
}

// LogConfig defines logging output
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TelemetryConfig toggles metric recording
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	params := vehicle.DefaultParams()
	rig := vehicle.DefaultChaseRig()

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "drivetoy - WASD / arrows to drive, P pause, R reset, Esc quit")
	v.SetDefault("window.resizable", true)

	v.SetDefault("loop.tps", 60)

	v.SetDefault("vehicle.maxSpeed", params.MaxSpeed)
	v.SetDefault("vehicle.accel", params.Accel)
	v.SetDefault("vehicle.friction", params.Friction)
	v.SetDefault("vehicle.turnSpeed", params.TurnSpeed)
	v.SetDefault("vehicle.stopEpsilon", params.StopEpsilon)

	v.SetDefault("camera.fov", 75.0)
	v.SetDefault("camera.near", 0.1)
	v.SetDefault("camera.far", 1000.0)
	v.SetDefault("camera.offset", []float64{rig.Offset[0], rig.Offset[1], rig.Offset[2]})
	v.SetDefault("camera.rideHeight", rig.RideHeight)

	v.SetDefault("scene.groundSize", 500.0)
	v.SetDefault("scene.groundDivisions", 20)
	v.SetDefault("scene.checker", true)

	v.SetDefault("log.level", "info")

	v.SetDefault("telemetry.enabled", true)
}

// Load reads configDir/drivetoy.cfg.json over the defaults, applies
// DRIVETOY_* environment overrides and validates the result.
// A missing config file is not an error.
func Load(v *viper.Viper, configDir string) (*Config, error) {
	SetDefaults(v)

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the simulation or renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Loop.TPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.tps %d must be positive", c.Loop.TPS))
	}

	p := c.Vehicle
	if p.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("vehicle.maxSpeed %v must be positive", p.MaxSpeed))
	}
	if p.Accel < 0 || p.Friction < 0 || p.TurnSpeed < 0 || p.StopEpsilon < 0 {
		errs = append(errs, errors.New("vehicle accel, friction, turnSpeed and stopEpsilon must not be negative"))
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov %v must be between 0 and 180 degrees", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera clip range [%v, %v] is empty", c.Camera.Near, c.Camera.Far))
	}
	if len(c.Camera.Offset) != 3 {
		errs = append(errs, fmt.Errorf("camera.offset needs 3 components, got %d", len(c.Camera.Offset)))
	}

	if c.Scene.GroundSize <= 0 || c.Scene.GroundDivisions <= 0 {
		errs = append(errs, errors.New("scene.groundSize and scene.groundDivisions must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ChaseRig returns the camera rig described by the camera section.
// Call it only on a validated config.
func (c *Config) ChaseRig() vehicle.ChaseRig {
	return vehicle.ChaseRig{
		Offset:     mgl64.Vec3{c.Camera.Offset[0], c.Camera.Offset[1], c.Camera.Offset[2]},
		RideHeight: c.Camera.RideHeight,
	}
}
