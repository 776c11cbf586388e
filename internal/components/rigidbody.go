package components

import (
	"playground3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0 // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

// Pose is the snapshot the physics world publishes for a body after each
// integration step.
type Pose struct {
	Position rl.Vector3
	Velocity rl.Vector3
}

// Rigidbody is a mass-bearing body integrated by the physics world. Its pose
// is owned by the world: other components issue velocity commands via
// SetLinearVelocity and observe results via OnMove, they never write the
// velocity or position directly.
type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32 // how fast rotation slows down
	UseGravity      bool

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	CanSleep   bool    // whether this object can sleep (default true)
	sleepTimer float32 // time spent below velocity threshold

	pending    rl.Vector3
	hasPending bool

	moved engine.Event[Pose]
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Velocity:        rl.Vector3{},
		AngularVelocity: rl.Vector3{},
		Mass:            1.0,
		Bounciness:      0.5,
		Friction:        0.1,
		AngularDamping:  0.98, // slight damping each frame
		UseGravity:      true,
		CanSleep:        true,
	}
}

// SetLinearVelocity stages a velocity command. The physics world applies it
// at the start of its next integration step; commands issued in the same
// frame overwrite each other, last one wins.
func (r *Rigidbody) SetLinearVelocity(v rl.Vector3) {
	r.pending = v
	r.hasPending = true
}

// TakePendingVelocity returns the staged command, if any, and clears it.
// Called by the physics world only.
func (r *Rigidbody) TakePendingVelocity() (rl.Vector3, bool) {
	if !r.hasPending {
		return rl.Vector3{}, false
	}
	r.hasPending = false
	return r.pending, true
}

// OnMove subscribes to pose updates published after each physics step.
// The returned func removes the subscription again.
func (r *Rigidbody) OnMove(fn func(Pose)) func() {
	return r.moved.AddListener(fn)
}

// PublishPose notifies subscribers of the body's post-step position and
// velocity. Called by the physics world only.
func (r *Rigidbody) PublishPose(position rl.Vector3) {
	r.moved.Invoke(Pose{Position: position, Velocity: r.Velocity})
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Extra damping when nearly at rest to reduce jitter
		dampFactor := float32(0.9)
		r.Velocity = rl.Vector3Scale(r.Velocity, dampFactor)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, dampFactor)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
