package input

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/render/rendertest"
	"chosenoffset.com/drivetoy/internal/vehicle"
)

func TestTracker_AbsentKeyIsNotHeld(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.IsHeld("w"))
	assert.False(t, tr.IsHeld("NoSuchKey"))
}

func TestTracker_DownThenUp(t *testing.T) {
	tr := NewTracker()

	tr.KeyDown("w")
	assert.True(t, tr.IsHeld("w"))

	// Auto-repeat is just another key-down.
	tr.KeyDown("w")
	assert.True(t, tr.IsHeld("w"))

	tr.KeyUp("w")
	assert.False(t, tr.IsHeld("w"))

	tr.KeyUp("ArrowUp")
	assert.False(t, tr.IsHeld("ArrowUp"), "key-up without key-down is harmless")
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown("w")
	tr.KeyDown("ArrowLeft")

	tr.Reset()

	assert.False(t, tr.IsHeld("w"))
	assert.False(t, tr.IsHeld("ArrowLeft"))
}

func TestBindings_Controls(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		name string
		held []string
		want vehicle.Controls
	}{
		{"nothing", nil, vehicle.Controls{}},
		{"w", []string{"w"}, vehicle.Controls{Forward: true}},
		{"arrow up", []string{"ArrowUp"}, vehicle.Controls{Forward: true}},
		{"s and arrow down", []string{"s", "ArrowDown"}, vehicle.Controls{Backward: true}},
		{"a", []string{"a"}, vehicle.Controls{Left: true}},
		{"arrow right", []string{"ArrowRight"}, vehicle.Controls{Right: true}},
		{"everything", []string{"w", "s", "a", "d"}, vehicle.Controls{Forward: true, Backward: true, Left: true, Right: true}},
		{"uppercase is not bound", []string{"W"}, vehicle.Controls{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for _, k := range tt.held {
				tr.KeyDown(k)
			}
			assert.Equal(t, tt.want, b.Controls(tr))
		})
	}
}

func TestBindings_ReleasedKeyStopsControl(t *testing.T) {
	b := DefaultBindings()
	tr := NewTracker()

	tr.KeyDown("w")
	tr.KeyDown("ArrowUp")
	tr.KeyUp("w")
	assert.True(t, b.Controls(tr).Forward, "the alias is still held")

	tr.KeyUp("ArrowUp")
	assert.False(t, b.Controls(tr).Forward)
}

func TestPoller_EmitsEdges(t *testing.T) {
	src := rendertest.NewInput()
	tr := NewTracker()
	p := NewPoller(src, tr, DefaultBindings(), zerolog.Nop())

	p.Poll()
	assert.False(t, tr.IsHeld("w"))

	src.Press(render.KeyW)
	src.Press(render.KeyLeft)
	p.Poll()
	assert.True(t, tr.IsHeld("w"))
	assert.True(t, tr.IsHeld("ArrowLeft"))

	src.Release(render.KeyW)
	p.Poll()
	assert.False(t, tr.IsHeld("w"))
	assert.True(t, tr.IsHeld("ArrowLeft"))

	assert.Equal(t, 3*len(DefaultBindings().Keys()), src.Reads, "every bound key is read once per poll")
}

func TestPoller_DoesNotOverrideUntrackedKeys(t *testing.T) {
	src := rendertest.NewInput()
	tr := NewTracker()
	p := NewPoller(src, tr, DefaultBindings(), zerolog.Nop())

	tr.KeyDown("x")
	p.Poll()
	assert.True(t, tr.IsHeld("x"))
}

func TestPoller_SkipsUnknownBinding(t *testing.T) {
	src := rendertest.NewInput()
	b := Bindings{Forward: []string{"w", "Hyper"}}
	p := NewPoller(src, NewTracker(), b, zerolog.Nop())

	p.Poll()
	assert.Equal(t, 1, src.Reads)
}
