package physics

import (
	"testing"

	"playground3d/internal/components"
	"playground3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60.0)

var gravity = rl.Vector3{Y: -9.8}

func makeStaticBox(name string, pos, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(size))
	return g
}

func makeDynamicBox(name string, pos, size rl.Vector3) (*engine.GameObject, *components.Rigidbody) {
	g := makeStaticBox(name, pos, size)
	rb := components.NewRigidbody()
	rb.Bounciness = 0
	g.AddComponent(rb)
	return g, rb
}

func makeSphereBody(name string, pos rl.Vector3, radius float32) (*engine.GameObject, *components.Rigidbody) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewSphereCollider(radius))
	rb := components.NewRigidbody()
	rb.Bounciness = 0
	rb.CanSleep = false
	g.AddComponent(rb)
	return g, rb
}

// ground returns a large flat box whose top face sits at y=0.
func ground() *engine.GameObject {
	return makeStaticBox("Ground", rl.Vector3{Y: -0.5}, rl.Vector3{X: 40, Y: 1, Z: 40})
}

func TestAddBodyClassification(t *testing.T) {
	w := NewWorld(gravity)

	w.AddBody(ground())
	sphere, _ := makeSphereBody("Player", rl.Vector3{Y: 5}, 1.3)
	w.AddBody(sphere)

	assert.Equal(t, 1, w.DynamicBodyCount())
	assert.Equal(t, 1, w.StaticBodyCount())
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld(gravity)
	g := ground()
	sphere, _ := makeSphereBody("Player", rl.Vector3{Y: 5}, 1.3)
	w.AddBody(g)
	w.AddBody(sphere)

	w.RemoveBody(sphere)
	w.RemoveBody(g)

	assert.Zero(t, w.DynamicBodyCount())
	assert.Zero(t, w.StaticBodyCount())
}

func TestGravityIntegration(t *testing.T) {
	w := NewWorld(gravity)
	sphere, rb := makeSphereBody("Ball", rl.Vector3{Y: 50}, 1)
	w.AddBody(sphere)

	w.Step(dt)

	assert.InDelta(t, -9.8*dt, rb.Velocity.Y, 1e-4)
	assert.InDelta(t, 50+float64(rb.Velocity.Y*dt), float64(sphere.Transform.Position.Y), 1e-4)
}

func TestStagedCommandAppliedAtNextStep(t *testing.T) {
	w := NewWorld(gravity)
	sphere, rb := makeSphereBody("Player", rl.Vector3{Y: 50}, 1)
	w.AddBody(sphere)

	rb.SetLinearVelocity(rl.Vector3{X: 8, Y: 2})

	// Nothing moves until the world steps
	assert.Equal(t, rl.Vector3{Y: 50}, sphere.Transform.Position)
	assert.Equal(t, rl.Vector3{}, rb.Velocity)

	w.Step(dt)

	// The command replaced the velocity, then gravity integrated on top
	assert.InDelta(t, 8, rb.Velocity.X, 1e-4)
	assert.InDelta(t, 2-9.8*dt, rb.Velocity.Y, 1e-4)
	assert.Greater(t, sphere.Transform.Position.X, float32(0))
}

func TestLastCommandWins(t *testing.T) {
	w := NewWorld(gravity)
	sphere, rb := makeSphereBody("Player", rl.Vector3{Y: 50}, 1)
	w.AddBody(sphere)

	rb.SetLinearVelocity(rl.Vector3{X: 100})
	rb.SetLinearVelocity(rl.Vector3{X: 8})
	w.Step(dt)

	assert.InDelta(t, 8, rb.Velocity.X, 1e-4)
}

func TestSphereRestsOnStaticBox(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(ground())
	sphere, rb := makeSphereBody("Player", rl.Vector3{Y: 5}, 1.3)
	w.AddBody(sphere)

	for i := 0; i < 300; i++ {
		w.Step(dt)
	}

	assert.InDelta(t, 1.3, sphere.Transform.Position.Y, 0.05,
		"sphere should rest with its bottom on the ground plane")
	assert.Less(t, absf(rb.Velocity.Y), float32(0.1),
		"resting vertical velocity must sit inside the grounded threshold")
}

func TestStepPublishesPose(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(ground())
	sphere, rb := makeSphereBody("Player", rl.Vector3{Y: 5}, 1.3)
	w.AddBody(sphere)

	var got components.Pose
	calls := 0
	rb.OnMove(func(p components.Pose) {
		got = p
		calls++
	})

	w.Step(dt)

	require.Equal(t, 1, calls, "every step publishes exactly one pose per body")
	assert.Equal(t, sphere.Transform.Position, got.Position,
		"the published pose is the post-collision position")
	assert.Equal(t, rb.Velocity, got.Velocity)
}

func TestJumpCommandLaunchesRestingSphere(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(ground())
	sphere, rb := makeSphereBody("Player", rl.Vector3{Y: 1.3}, 1.3)
	w.AddBody(sphere)

	// Settle first
	for i := 0; i < 60; i++ {
		w.Step(dt)
	}
	startY := sphere.Transform.Position.Y

	rb.SetLinearVelocity(rl.Vector3{Y: 5})
	for i := 0; i < 20; i++ {
		w.Step(dt)
	}

	assert.Greater(t, sphere.Transform.Position.Y, startY+0.5,
		"an upward command should lift the sphere off the ground")
}

func TestBoxSleepsWhenSettled(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(ground())
	box, rb := makeDynamicBox("Crate", rl.Vector3{Y: 0.55}, rl.Vector3{X: 1, Y: 1, Z: 1})
	w.AddBody(box)

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	assert.True(t, rb.IsSleeping, "a settled box should go to sleep")
	assert.Equal(t, rl.Vector3{}, rb.Velocity)
}

func TestSleeplessBodyStaysAwake(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(ground())
	sphere, rb := makeSphereBody("Player", rl.Vector3{Y: 1.3}, 1.3)
	w.AddBody(sphere)

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}

	assert.False(t, rb.IsSleeping, "CanSleep=false bodies never sleep")
}

func TestDynamicSpheresSeparate(t *testing.T) {
	w := NewWorld(rl.Vector3{}) // no gravity, isolate the contact response
	a, rbA := makeSphereBody("A", rl.Vector3{X: -0.5}, 1)
	b, rbB := makeSphereBody("B", rl.Vector3{X: 0.5}, 1)
	rbA.UseGravity = false
	rbB.UseGravity = false
	w.AddBody(a)
	w.AddBody(b)

	w.Step(dt)

	dist := rl.Vector3Length(rl.Vector3Subtract(a.Transform.Position, b.Transform.Position))
	assert.Greater(t, dist, float32(1.0), "overlapping spheres must be pushed apart")
}

func TestRaycastClosestHit(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(makeStaticBox("Near", rl.Vector3{Z: -5}, rl.Vector3{X: 2, Y: 2, Z: 2}))
	w.AddBody(makeStaticBox("Far", rl.Vector3{Z: -15}, rl.Vector3{X: 2, Y: 2, Z: 2}))

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	require.True(t, ok)
	assert.Equal(t, "Near", hit.GameObject.Name)
	assert.InDelta(t, 4, hit.Distance, 1e-3)
	assert.Equal(t, rl.Vector3{Z: 1}, hit.Normal)
}

func TestRaycastMiss(t *testing.T) {
	w := NewWorld(gravity)
	w.AddBody(makeStaticBox("Near", rl.Vector3{Z: -5}, rl.Vector3{X: 2, Y: 2, Z: 2}))

	_, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Y: 1}, 100)
	assert.False(t, ok)
}

func TestRaycastSphere(t *testing.T) {
	w := NewWorld(gravity)
	sphere, _ := makeSphereBody("Player", rl.Vector3{Z: -10}, 1.3)
	w.AddBody(sphere)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	require.True(t, ok)
	assert.Equal(t, "Player", hit.GameObject.Name)
	assert.InDelta(t, 8.7, hit.Distance, 1e-3)
}
