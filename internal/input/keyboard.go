// Package input tracks the pressed state of the movement keys.
//
// The tracker keeps a small record of named action flags. Key transitions
// flip the flags; the player controller reads the whole record once per
// frame. Nothing else mutates it.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action names a movement input.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionStrafeLeft
	ActionStrafeRight
	ActionJump
)

// State is the per-frame snapshot of all action flags.
type State struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	Jump        bool
}

// Tracker maps raw key transitions onto action flags. It only reacts to keys
// it has bindings for; everything else is ignored.
type Tracker struct {
	bindings map[int32]Action
	state    State
	attached bool
}

// NewTracker returns a tracker with the default WASD + space bindings.
func NewTracker() *Tracker {
	return &Tracker{
		bindings: map[int32]Action{
			rl.KeyW:     ActionForward,
			rl.KeyS:     ActionBackward,
			rl.KeyA:     ActionStrafeLeft,
			rl.KeyD:     ActionStrafeRight,
			rl.KeySpace: ActionJump,
		},
	}
}

// Bind maps an additional key to an action.
func (t *Tracker) Bind(key int32, action Action) {
	t.bindings[key] = action
}

// Attach enables the tracker. Key transitions are dropped while detached so
// handler lifetime matches the controller that owns the tracker.
func (t *Tracker) Attach() {
	t.attached = true
}

// Detach disables the tracker and releases all flags, so a key held across
// teardown doesn't leave a stuck input behind.
func (t *Tracker) Detach() {
	t.attached = false
	t.state = State{}
}

// Attached reports whether the tracker currently consumes key events.
func (t *Tracker) Attached() bool {
	return t.attached
}

// Handle processes one key transition. Unbound keys are ignored.
func (t *Tracker) Handle(key int32, down bool) {
	if !t.attached {
		return
	}
	action, ok := t.bindings[key]
	if !ok {
		return
	}
	switch action {
	case ActionForward:
		t.state.Forward = down
	case ActionBackward:
		t.state.Backward = down
	case ActionStrafeLeft:
		t.state.StrafeLeft = down
	case ActionStrafeRight:
		t.state.StrafeRight = down
	case ActionJump:
		t.state.Jump = down
	}
}

// Poll feeds this frame's key transitions from the window into Handle.
// Call once per frame before the scene updates.
func (t *Tracker) Poll() {
	if !t.attached {
		return
	}
	for key := range t.bindings {
		if rl.IsKeyPressed(key) {
			t.Handle(key, true)
		}
		if rl.IsKeyReleased(key) {
			t.Handle(key, false)
		}
	}
}

// State returns the current snapshot of all flags.
func (t *Tracker) State() State {
	return t.state
}
