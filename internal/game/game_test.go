package game

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/render/rendertest"
	"chosenoffset.com/drivetoy/internal/scene"
	"chosenoffset.com/drivetoy/internal/simulation"
	"chosenoffset.com/drivetoy/internal/telemetry"
	"chosenoffset.com/drivetoy/internal/vehicle"
)

type fixture struct {
	m    *Manager
	g    *Game
	in   *rendertest.Input
	rend *rendertest.Renderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := simulation.Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	rec, err := telemetry.New(noop.Meter{})
	require.NoError(t, err)

	in := rendertest.NewInput()
	rend := &rendertest.Renderer{}
	g := New(context.Background(), cfg, rend, in, rec, zerolog.Nop())

	return &fixture{m: NewManager(g, in, zerolog.Nop()), g: g, in: in, rend: rend}
}

// tick runs n updates, clearing just-pressed flags after each like a backend does.
func (f *fixture) tick(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, f.m.Update())
		f.in.EndTick()
	}
}

func (f *fixture) assertSynced(t *testing.T) {
	t.Helper()
	assert.Equal(t, f.g.Rig.CarPosition(f.g.Vehicle), f.g.Drive.Car.Position)
	assert.Equal(t, f.g.Vehicle.Heading, f.g.Drive.Car.RotationY)
	assert.Equal(t, vehicle.Chase(f.g.Vehicle, f.g.Rig), f.g.Camera.Pose)
}

func TestNew_StartsAtSpawn(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, vehicle.Spawn(), f.g.Vehicle)
	assert.False(t, f.g.Paused)
	f.assertSynced(t)
}

func TestUpdate_ThirtyForwardTicksReachMaxSpeed(t *testing.T) {
	f := newFixture(t)

	f.in.Press(render.KeyW)
	f.tick(t, 30)

	assert.Equal(t, 0.3, f.g.Vehicle.Speed)
	assert.Less(t, f.g.Vehicle.Position[1], 0.0, "heading 0 drives toward -Z")
	assert.Equal(t, 0.0, f.g.Vehicle.Position[0])
	assert.Equal(t, int64(30), f.g.Telemetry.Ticks())
	f.assertSynced(t)
}

func TestUpdate_CoastsToRestAfterRelease(t *testing.T) {
	f := newFixture(t)

	f.in.Press(render.KeyUp)
	f.tick(t, 10)
	f.in.Release(render.KeyUp)

	prev := f.g.Vehicle.Speed
	for i := 0; i < 100; i++ {
		f.tick(t, 1)
		require.LessOrEqual(t, f.g.Vehicle.Speed, prev)
		prev = f.g.Vehicle.Speed
	}
	assert.Equal(t, 0.0, f.g.Vehicle.Speed)
}

func TestManager_PauseFreezesMotion(t *testing.T) {
	f := newFixture(t)

	f.in.Press(render.KeyP)
	f.in.Press(render.KeyW)
	f.tick(t, 5)

	assert.True(t, f.g.Paused)
	assert.Equal(t, vehicle.Spawn(), f.g.Vehicle)
	assert.True(t, f.g.Tracker.IsHeld("w"), "input is tracked while paused")
	assert.Zero(t, f.g.Telemetry.Ticks())

	f.in.Release(render.KeyP)
	f.in.Press(render.KeyP)
	f.tick(t, 1)

	assert.False(t, f.g.Paused)
	assert.InDelta(t, 0.01, f.g.Vehicle.Speed, 1e-12)
}

func TestManager_ResetReturnsToSpawn(t *testing.T) {
	f := newFixture(t)

	f.in.Press(render.KeyW)
	f.in.Press(render.KeyA)
	f.tick(t, 20)
	require.NotEqual(t, vehicle.Spawn(), f.g.Vehicle)

	f.in.Release(render.KeyW)
	f.in.Release(render.KeyA)
	f.in.Press(render.KeyR)
	f.tick(t, 1)

	assert.Equal(t, vehicle.Spawn(), f.g.Vehicle)
	assert.False(t, f.g.Tracker.IsHeld("w"))
	f.assertSynced(t)
}

func TestManager_EscapeTerminates(t *testing.T) {
	f := newFixture(t)

	f.in.Press(render.KeyW)
	f.tick(t, 3)
	before := f.g.Vehicle

	f.in.Press(render.KeyEscape)
	err := f.m.Update()

	assert.True(t, errors.Is(err, render.ErrTerminated))
	assert.Equal(t, before, f.g.Vehicle, "no tick runs on the quitting update")
}

func TestManager_LayoutResizesWithoutTouchingMotion(t *testing.T) {
	f := newFixture(t)

	f.in.Press(render.KeyD)
	f.in.Press(render.KeyW)
	f.tick(t, 7)
	before := f.g.Vehicle

	w, h := f.m.Layout(1000, 500)
	assert.Equal(t, 1000, w)
	assert.Equal(t, 500, h)
	assert.InDelta(t, 2.0, f.g.Camera.Aspect, 1e-12)
	vw, vh := f.g.Camera.Viewport()
	assert.Equal(t, 1000, vw)
	assert.Equal(t, 500, vh)
	assert.Equal(t, 1000, f.g.ScreenWidth)
	assert.Equal(t, before, f.g.Vehicle)
}

func TestDraw_SkyGroundCarAndHUD(t *testing.T) {
	f := newFixture(t)
	screen := rendertest.NewImage(1280, 800)

	f.m.Draw(screen)

	assert.Equal(t, scene.SkyColor, screen.Filled)
	assert.Equal(t, 1, f.g.FrameCount)
	assert.Positive(t, f.g.LastStats.Triangles)
	assert.Equal(t, f.g.LastStats.Triangles+2, screen.Triangles(), "scene plus the HUD panel")
	require.NotEmpty(t, f.rend.Texts)
	assert.Contains(t, f.rend.Texts[0].Text, "Speed")
}

func TestDraw_FollowsScreenSize(t *testing.T) {
	f := newFixture(t)
	before := f.g.Vehicle

	f.m.Draw(rendertest.NewImage(640, 480))

	assert.Equal(t, 640, f.g.ScreenWidth)
	assert.Equal(t, 480, f.g.ScreenHeight)
	assert.InDelta(t, 640.0/480.0, f.g.Camera.Aspect, 1e-12)
	assert.Equal(t, before, f.g.Vehicle)
}

func TestClose_DisposesImages(t *testing.T) {
	f := newFixture(t)
	f.m.Draw(rendertest.NewImage(1280, 800))
	require.Len(t, f.rend.Images, 2, "scene and HUD each allocate one source image")

	f.g.Close()

	for _, img := range f.rend.Images {
		assert.True(t, img.Disposed)
	}
}
