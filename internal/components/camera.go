package components

import (
	"playground3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera renders the scene from the player's point of view. Its Position is
// written every frame by the player controller from the physics body's
// reported pose; its look direction comes from whatever LookProvider sits on
// the same GameObject.
type Camera struct {
	engine.BaseComponent
	Position   rl.Vector3
	FOV        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        60.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	lookDir := rl.Vector3{X: 0, Y: 0, Z: -1}
	if g := c.GetGameObject(); g != nil {
		if lp := engine.FindComponent[engine.LookProvider](g); lp != nil {
			x, y, z := lp.GetLookDirection()
			lookDir = rl.Vector3{X: x, Y: y, Z: z}
		}
	}

	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, lookDir),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
