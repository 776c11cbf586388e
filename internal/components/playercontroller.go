package components

import (
	"playground3d/internal/engine"
	"playground3d/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// InputSource provides the per-frame snapshot of movement flags.
type InputSource interface {
	State() input.State
}

// OrientationProvider supplies the camera's current euler orientation in
// degrees (X pitch, Y yaw, Z roll).
type OrientationProvider interface {
	Orientation() rl.Vector3
}

// PlayerController translates keyboard state plus camera orientation into a
// velocity command for the player's physics body, once per rendered frame,
// and keeps the camera glued to the body.
//
// The controller never writes the body's pose. It caches the pose the
// physics world last published and issues velocity commands the world
// applies at its next step. The vertical component of every command is the
// last reported vertical velocity, so gravity keeps working; only a jump
// overwrites it.
type PlayerController struct {
	engine.BaseComponent
	MoveSpeed     float32
	JumpForce     float32
	JumpThreshold float32

	Input  InputSource
	Look   OrientationProvider
	Camera *Camera

	body        *Rigidbody
	lastPos     rl.Vector3
	lastVel     rl.Vector3
	unsubscribe func()
}

func NewPlayerController(src InputSource, look OrientationProvider) *PlayerController {
	return &PlayerController{
		MoveSpeed:     8.0,
		JumpForce:     5.0,
		JumpThreshold: 0.1,
		Input:         src,
		Look:          look,
	}
}

// Start resolves the body on the same GameObject and subscribes to its pose
// updates. The subscription lives until Stop.
func (c *PlayerController) Start() {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	c.lastPos = g.Transform.Position

	c.body = engine.GetComponent[*Rigidbody](g)
	if c.body == nil {
		return
	}
	c.unsubscribe = c.body.OnMove(func(p Pose) {
		c.lastPos = p.Position
		c.lastVel = p.Velocity
	})
}

// Stop tears down the pose subscription.
func (c *PlayerController) Stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *PlayerController) Update(deltaTime float32) {
	if c.body == nil || c.Input == nil {
		return
	}

	st := c.Input.State()

	// Opposing keys cancel per axis
	front := axisValue(st.Backward) - axisValue(st.Forward)
	side := axisValue(st.StrafeLeft) - axisValue(st.StrafeRight)

	dir := normalizeOrZero(rl.Vector3{X: -side, Z: front})
	dir = rl.Vector3Scale(dir, c.MoveSpeed)
	if c.Look != nil {
		dir = rotateByEuler(dir, c.Look.Orientation())
	}

	// Horizontal from input, vertical from the engine's last report -
	// the command must never zero out gravity's work.
	cmd := rl.Vector3{X: dir.X, Y: c.lastVel.Y, Z: dir.Z}

	if st.Jump && c.Grounded() {
		cmd.Y = c.JumpForce
	}

	c.body.SetLinearVelocity(cmd)

	// Camera tracks the reported body position exactly, no smoothing
	if c.Camera != nil {
		c.Camera.Position = c.lastPos
	}
}

// Grounded is a velocity heuristic, not a contact query: near-zero vertical
// velocity is taken to mean "standing on something". That is also true for
// an instant at the apex of a jump, where vertical velocity crosses zero, so
// a second jump is possible mid-air at exactly that moment. Reproducible by
// holding space: the player chains a ground jump into an apex jump.
func (c *PlayerController) Grounded() bool {
	vy := c.lastVel.Y
	if vy < 0 {
		vy = -vy
	}
	return vy < c.JumpThreshold
}

// LastPosition returns the most recently published body position.
func (c *PlayerController) LastPosition() rl.Vector3 {
	return c.lastPos
}

// LastVelocity returns the most recently published body velocity.
func (c *PlayerController) LastVelocity() rl.Vector3 {
	return c.lastVel
}

func axisValue(pressed bool) float32 {
	if pressed {
		return 1
	}
	return 0
}

// normalizeOrZero normalizes a vector; the zero vector stays zero instead of
// producing NaNs.
func normalizeOrZero(v rl.Vector3) rl.Vector3 {
	length := rl.Vector3Length(v)
	if length == 0 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/length)
}

// rotateByEuler rotates v by euler angles in degrees, X then Y then Z, the
// same convention the renderer and colliders use.
func rotateByEuler(v, euler rl.Vector3) rl.Vector3 {
	rotX := rl.MatrixRotateX(euler.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(euler.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(euler.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	return rl.Vector3Transform(v, rotMatrix)
}
