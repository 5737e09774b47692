package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/drivetoy/internal/render/lighting"
)

// Colours and dimensions of the driving scene.
var (
	SkyColor    = color.NRGBA{0xa0, 0xe0, 0xff, 0xff}
	GroundColor = color.NRGBA{0x22, 0x8b, 0x22, 0xff}
	CarColor    = color.NRGBA{0xff, 0x00, 0x00, 0xff}
)

const (
	CarWidth  = 2.0
	CarHeight = 1.0
	CarLength = 4.0

	// Darkening applied to every other ground tile.
	checkerShade = 0.88
)

// DriveOptions configures NewDrive.
type DriveOptions struct {
	GroundSize      float64
	GroundDivisions int
	Checker         bool
	RideHeight      float64
}

// Drive is the scene with handles to the objects the game moves.
type Drive struct {
	*Scene
	Ground *Object
	Car    *Object
}

// NewDrive builds the ground, the car at the origin and the default lights.
func NewDrive(opts DriveOptions) *Drive {
	lights := lighting.NewManager()
	lights.SetAmbient(0.3, color.NRGBA{255, 255, 255, 255})
	lights.AddDirectional(mgl64.Vec3{10, 20, 10}, mgl64.Vec3{}, 1, color.NRGBA{255, 255, 255, 255})

	s := &Scene{
		Background: SkyColor,
		Lights:     lights,
	}

	ground := s.Add(&Object{
		Name:  "ground",
		Mesh:  Plane(opts.GroundSize, opts.GroundDivisions, opts.Checker, checkerShade),
		Color: GroundColor,
		Layer: LayerGround,
	})

	car := s.Add(&Object{
		Name:     "car",
		Mesh:     Box(CarWidth, CarHeight, CarLength),
		Color:    CarColor,
		Layer:    LayerObjects,
		Cull:     true,
		Position: mgl64.Vec3{0, opts.RideHeight, 0},
	})

	return &Drive{Scene: s, Ground: ground, Car: car}
}
