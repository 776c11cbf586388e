package components

import (
	"playground3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MouseLook rotates the camera from pointer-lock mouse movement. It owns the
// view orientation; the player controller reads it to make movement relative
// to where the player is looking.
type MouseLook struct {
	engine.BaseComponent
	Yaw         float32 // degrees around Y, 0 looks down -Z
	Pitch       float32 // degrees, clamped to +/-89
	Sensitivity float32 // degrees per mouse unit
}

func NewMouseLook() *MouseLook {
	return &MouseLook{
		Sensitivity: 0.1,
	}
}

func (m *MouseLook) Update(deltaTime float32) {
	mouseDelta := rl.GetMouseDelta()
	m.Yaw -= mouseDelta.X * m.Sensitivity
	m.Pitch -= mouseDelta.Y * m.Sensitivity

	// Clamp pitch so the view can't flip over
	if m.Pitch > 89 {
		m.Pitch = 89
	}
	if m.Pitch < -89 {
		m.Pitch = -89
	}
}

// Orientation returns the current euler angles in degrees (X pitch, Y yaw).
func (m *MouseLook) Orientation() rl.Vector3 {
	return rl.Vector3{X: m.Pitch, Y: m.Yaw}
}

// GetLookDirection implements engine.LookProvider.
func (m *MouseLook) GetLookDirection() (x, y, z float32) {
	dir := rotateByEuler(rl.Vector3{X: 0, Y: 0, Z: -1}, m.Orientation())
	return dir.X, dir.Y, dir.Z
}
