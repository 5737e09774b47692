// Package input tracks which keys are held and reduces them to vehicle controls.
package input

import (
	"github.com/rs/zerolog"

	"chosenoffset.com/drivetoy/internal/render"
	"chosenoffset.com/drivetoy/internal/vehicle"
)

// Tracker maps key identifiers ("w", "ArrowUp", ...) to their held state.
// It is written by key events and read once per tick; both happen on the game
// loop goroutine, so it does no locking.
type Tracker struct {
	held map[string]bool
}

// NewTracker returns a tracker with no keys held.
func NewTracker() *Tracker {
	return &Tracker{held: make(map[string]bool)}
}

// KeyDown marks key as held. Auto-repeat is not distinguished from a fresh press.
func (t *Tracker) KeyDown(key string) {
	t.held[key] = true
}

// KeyUp marks key as released.
func (t *Tracker) KeyUp(key string) {
	t.held[key] = false
}

// IsHeld reports whether key is held. Unknown keys are not held.
func (t *Tracker) IsHeld(key string) bool {
	return t.held[key]
}

// Reset releases every key.
func (t *Tracker) Reset() {
	clear(t.held)
}

// Bindings maps each control to the keys that drive it. The mapping is fixed.
type Bindings struct {
	Forward  []string
	Backward []string
	Left     []string
	Right    []string
}

// DefaultBindings returns WASD plus the arrow keys.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  []string{render.KeyW.String(), render.KeyUp.String()},
		Backward: []string{render.KeyS.String(), render.KeyDown.String()},
		Left:     []string{render.KeyA.String(), render.KeyLeft.String()},
		Right:    []string{render.KeyD.String(), render.KeyRight.String()},
	}
}

// Controls reduces the tracker's held keys to this tick's controls.
func (b Bindings) Controls(t *Tracker) vehicle.Controls {
	return vehicle.Controls{
		Forward:  anyHeld(t, b.Forward),
		Backward: anyHeld(t, b.Backward),
		Left:     anyHeld(t, b.Left),
		Right:    anyHeld(t, b.Right),
	}
}

// Keys returns every bound key identifier.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b.Forward)+len(b.Backward)+len(b.Left)+len(b.Right))
	keys = append(keys, b.Forward...)
	keys = append(keys, b.Backward...)
	keys = append(keys, b.Left...)
	keys = append(keys, b.Right...)
	return keys
}

func anyHeld(t *Tracker, keys []string) bool {
	for _, k := range keys {
		if t.IsHeld(k) {
			return true
		}
	}
	return false
}

// Poller turns the backend's per-tick pressed state into key-down and key-up
// events on a Tracker.
type Poller struct {
	source  render.InputManager
	tracker *Tracker
	keys    []render.Key
	logger  zerolog.Logger
}

// NewPoller watches every key in b on source and feeds edges into tracker.
// Identifiers the backend does not know are skipped with a warning.
func NewPoller(source render.InputManager, tracker *Tracker, b Bindings, logger zerolog.Logger) *Poller {
	p := &Poller{
		source:  source,
		tracker: tracker,
		logger:  logger.With().Str("component", "input").Logger(),
	}
	for _, name := range b.Keys() {
		k, ok := render.KeyByName(name)
		if !ok {
			p.logger.Warn().Str("key", name).Msg("Binding has no backend key")
			continue
		}
		p.keys = append(p.keys, k)
	}
	return p
}

// Poll emits an event for every watched key whose state changed since the last poll.
func (p *Poller) Poll() {
	for _, k := range p.keys {
		name := k.String()
		pressed := p.source.IsKeyPressed(k)
		if pressed == p.tracker.IsHeld(name) {
			continue
		}
		if pressed {
			p.tracker.KeyDown(name)
		} else {
			p.tracker.KeyUp(name)
		}
		p.logger.Trace().Str("key", name).Bool("held", pressed).Msg("Key state changed")
	}
}
