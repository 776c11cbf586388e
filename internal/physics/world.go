// Package physics is a small rigid-body world: gravity integration, a
// spatial-hash broad phase for dynamic bodies, sphere/box narrow phase with
// impulse resolution, and sleeping for settled bodies.
//
// Body poses are owned here. Components issue velocity commands that are
// applied at the start of the next Step, and receive post-step poses through
// their rigidbody subscriptions.
package physics

import (
	"unsafe"

	"playground3d/internal/components"
	"playground3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

type World struct {
	Gravity  rl.Vector3
	Dynamics []*engine.GameObject // mass-bearing, integrated every step
	Statics  []*engine.GameObject // no rigidbody (ground, walls, platforms)

	grid map[CellKey][]*engine.GameObject

	// Coarse bounds per static body, cached because statics never move.
	staticBounds map[*engine.GameObject]AABB
}

func NewWorld(gravity rl.Vector3) *World {
	return &World{
		Gravity:      gravity,
		Dynamics:     make([]*engine.GameObject, 0),
		Statics:      make([]*engine.GameObject, 0),
		grid:         make(map[CellKey][]*engine.GameObject),
		staticBounds: make(map[*engine.GameObject]AABB),
	}
}

// AddBody registers a GameObject with the world. Objects with a Rigidbody are
// integrated as dynamic bodies; objects without one are immovable statics.
func (w *World) AddBody(g *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](g)
	if rb == nil {
		w.Statics = append(w.Statics, g)
		if box := engine.GetComponent[*components.BoxCollider](g); box != nil {
			obb := NewOBBFromBox(box.GetCenter(), box.Size, g.WorldRotation(), g.WorldScale())
			w.staticBounds[g] = obb.AABB()
		}
		log.Debug().Str("body", g.Name).Msg("static body added")
		return
	}
	w.Dynamics = append(w.Dynamics, g)
	log.Debug().Str("body", g.Name).Float32("mass", rb.Mass).Msg("dynamic body added")
}

func (w *World) RemoveBody(g *engine.GameObject) {
	for i, obj := range w.Dynamics {
		if obj == g {
			w.Dynamics = append(w.Dynamics[:i], w.Dynamics[i+1:]...)
			return
		}
	}
	for i, obj := range w.Statics {
		if obj == g {
			w.Statics = append(w.Statics[:i], w.Statics[i+1:]...)
			delete(w.staticBounds, g)
			return
		}
	}
}

// DynamicBodyCount returns the number of dynamic physics bodies
func (w *World) DynamicBodyCount() int {
	return len(w.Dynamics)
}

// StaticBodyCount returns the number of static physics bodies
func (w *World) StaticBodyCount() int {
	return len(w.Statics)
}

// Step advances the simulation by deltaTime seconds: staged velocity commands
// are applied, gravity and velocities integrate, collisions resolve, and
// every dynamic body publishes its resulting pose to its subscribers.
func (w *World) Step(deltaTime float32) {
	// 1. Apply staged velocity commands
	for _, obj := range w.Dynamics {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil {
			continue
		}
		if v, ok := rb.TakePendingVelocity(); ok {
			rb.Velocity = v
			rb.Wake()
		}
	}

	// 2. Integrate forces and positions
	for _, obj := range w.Dynamics {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(w.Gravity, deltaTime))
		}

		obj.Transform.Position = rl.Vector3Add(
			obj.Transform.Position,
			rl.Vector3Scale(rb.Velocity, deltaTime),
		)
		obj.Transform.Rotation = rl.Vector3Add(
			obj.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, deltaTime),
		)

		// Angular damping, time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)

		wasAwake := !rb.IsSleeping
		rb.TrySleep(deltaTime)
		if wasAwake && rb.IsSleeping {
			log.Debug().Str("body", obj.Name).Msg("body went to sleep")
		}
	}

	// 3. Dynamic vs dynamic, spatial-hash broad phase
	w.rebuildGrid()

	checked := make(map[[2]uintptr]bool)
	for _, obj := range w.Dynamics {
		for _, other := range w.neighborsOf(obj) {
			if obj == other {
				continue
			}
			// Consistent pair key using pointer addresses (smaller first)
			ptrA, ptrB := uintptr(unsafe.Pointer(obj)), uintptr(unsafe.Pointer(other))
			if ptrA > ptrB {
				ptrA, ptrB = ptrB, ptrA
			}
			key := [2]uintptr{ptrA, ptrB}
			if checked[key] {
				continue
			}
			checked[key] = true
			w.resolveDynamic(obj, other)
		}
	}

	// 4. Dynamic vs static
	for _, obj := range w.Dynamics {
		w.resolveStatics(obj)
	}

	// 5. Publish post-step poses
	for _, obj := range w.Dynamics {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil {
			rb.PublishPose(obj.Transform.Position)
		}
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (w *World) rebuildGrid() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, obj := range w.Dynamics {
		cell := posToCell(obj.Transform.Position)
		w.grid[cell] = append(w.grid[cell], obj)
	}
}

// neighborsOf returns all dynamic bodies in the same and 26 neighboring cells
func (w *World) neighborsOf(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.Transform.Position)
	var neighbors []*engine.GameObject

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, w.grid[key]...)
			}
		}
	}
	return neighbors
}

func (w *World) resolveDynamic(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	sphereA := engine.GetComponent[*components.SphereCollider](a)
	sphereB := engine.GetComponent[*components.SphereCollider](b)
	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)

	switch {
	case sphereA != nil && sphereB != nil:
		w.resolveSphereVsSphere(a, b, rbA, rbB, sphereA, sphereB)
	case sphereA != nil && boxB != nil:
		w.resolveSphereVsBox(a, b, rbA, rbB, sphereA, boxB)
	case boxA != nil && sphereB != nil:
		w.resolveSphereVsBox(b, a, rbB, rbA, sphereB, boxA)
	case boxA != nil && boxB != nil:
		w.resolveBoxVsBox(a, b, rbA, rbB, boxA, boxB)
	}
}

func (w *World) resolveBoxVsBox(a, b *engine.GameObject, rbA, rbB *components.Rigidbody, boxA, boxB *components.BoxCollider) {
	obbA := NewOBBFromBox(boxA.GetCenter(), boxA.Size, a.WorldRotation(), a.WorldScale())
	obbB := NewOBBFromBox(boxB.GetCenter(), boxB.Size, b.WorldRotation(), b.WorldScale())

	pushOut := obbA.Resolve(obbB)
	if pushOut == (rl.Vector3{}) {
		return
	}

	wakeOnContact(rbA, rbB)

	// Split the push based on mass ratio
	totalMass := rbA.Mass + rbB.Mass
	ratioA := rbB.Mass / totalMass
	ratioB := rbA.Mass / totalMass

	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(pushOut, ratioA))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(pushOut, ratioB))

	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)

	impulse, ok := contactImpulse(rbA, rbB, normal)
	if !ok {
		return
	}
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	// Torque - contact point is on the face in the direction of the normal
	halfSizeA := rl.Vector3{X: boxA.Size.X / 2, Y: boxA.Size.Y / 2, Z: boxA.Size.Z / 2}
	halfSizeB := rl.Vector3{X: boxB.Size.X / 2, Y: boxB.Size.Y / 2, Z: boxB.Size.Z / 2}
	rA := estimateContactPoint(halfSizeA, rl.Vector3Scale(normal, -1))
	rB := estimateContactPoint(halfSizeB, normal)

	torqueScale := float32(500.0)
	torqueA := rl.Vector3CrossProduct(rA, impulse)
	torqueB := rl.Vector3CrossProduct(rB, rl.Vector3Scale(impulse, -1))

	rbA.AngularVelocity = rl.Vector3Add(rbA.AngularVelocity, rl.Vector3Scale(torqueA, torqueScale/rbA.Mass))
	rbB.AngularVelocity = rl.Vector3Add(rbB.AngularVelocity, rl.Vector3Scale(torqueB, torqueScale/rbB.Mass))
}

func (w *World) resolveSphereVsSphere(a, b *engine.GameObject, rbA, rbB *components.Rigidbody, sA, sB *components.SphereCollider) {
	diff := rl.Vector3Subtract(a.Transform.Position, b.Transform.Position)
	dist := rl.Vector3Length(diff)
	minDist := sA.Radius + sB.Radius

	if dist >= minDist || dist < 0.0001 {
		return
	}

	wakeOnContact(rbA, rbB)

	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := minDist - dist

	totalMass := rbA.Mass + rbB.Mass
	ratioA := rbB.Mass / totalMass
	ratioB := rbA.Mass / totalMass

	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(normal, penetration*ratioA))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(normal, penetration*ratioB))

	impulse, ok := contactImpulse(rbA, rbB, normal)
	if !ok {
		return
	}
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	// Torque for spheres - contact point is on surface along normal
	rA := rl.Vector3Scale(normal, -sA.Radius)
	rB := rl.Vector3Scale(normal, sB.Radius)

	torqueScale := float32(50.0)
	torqueA := rl.Vector3CrossProduct(rA, impulse)
	torqueB := rl.Vector3CrossProduct(rB, rl.Vector3Scale(impulse, -1))

	rbA.AngularVelocity = rl.Vector3Add(rbA.AngularVelocity, rl.Vector3Scale(torqueA, torqueScale/rbA.Mass))
	rbB.AngularVelocity = rl.Vector3Add(rbB.AngularVelocity, rl.Vector3Scale(torqueB, torqueScale/rbB.Mass))
}

func (w *World) resolveSphereVsBox(sphereObj, boxObj *engine.GameObject, rbSphere, rbBox *components.Rigidbody, sphere *components.SphereCollider, box *components.BoxCollider) {
	sphereCenter := sphereObj.Transform.Position
	obb := NewOBBFromBox(box.GetCenter(), box.Size, boxObj.WorldRotation(), boxObj.WorldScale())

	closest := obb.ClosestPoint(sphereCenter)
	diff := rl.Vector3Subtract(sphereCenter, closest)
	dist := rl.Vector3Length(diff)

	if dist >= sphere.Radius || dist < 0.0001 {
		return
	}

	wakeOnContact(rbSphere, rbBox)

	// Normal points from box to sphere
	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := sphere.Radius - dist

	totalMass := rbSphere.Mass + rbBox.Mass
	ratioSphere := rbBox.Mass / totalMass
	ratioBox := rbSphere.Mass / totalMass

	sphereObj.Transform.Position = rl.Vector3Add(sphereObj.Transform.Position, rl.Vector3Scale(normal, penetration*ratioSphere))
	boxObj.Transform.Position = rl.Vector3Subtract(boxObj.Transform.Position, rl.Vector3Scale(normal, penetration*ratioBox))

	impulse, ok := contactImpulse(rbSphere, rbBox, normal)
	if !ok {
		return
	}
	rbSphere.Velocity = rl.Vector3Add(rbSphere.Velocity, rl.Vector3Scale(impulse, 1/rbSphere.Mass))
	rbBox.Velocity = rl.Vector3Subtract(rbBox.Velocity, rl.Vector3Scale(impulse, 1/rbBox.Mass))

	rSphere := rl.Vector3Scale(normal, -sphere.Radius)
	torqueScale := float32(50.0)
	torqueSphere := rl.Vector3CrossProduct(rSphere, impulse)
	rbSphere.AngularVelocity = rl.Vector3Add(rbSphere.AngularVelocity, rl.Vector3Scale(torqueSphere, torqueScale/rbSphere.Mass))
}

// resolveStatics pushes a dynamic body out of every static it touches.
// Statics never move; the body loses its velocity along the contact normal
// (scaled by restitution), which is what keeps a resting body's vertical
// velocity near zero between steps.
func (w *World) resolveStatics(obj *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil || rb.IsSleeping {
		return
	}

	sphere := engine.GetComponent[*components.SphereCollider](obj)
	box := engine.GetComponent[*components.BoxCollider](obj)

	var bounds AABB
	switch {
	case sphere != nil:
		bounds = NewAABBFromSphere(sphere.GetCenter(), sphere.Radius)
	case box != nil:
		obb := NewOBBFromBox(box.GetCenter(), box.Size, obj.WorldRotation(), obj.WorldScale())
		bounds = obb.AABB()
	default:
		return
	}

	for _, static := range w.Statics {
		staticBounds, ok := w.staticBounds[static]
		if ok && !bounds.Intersects(staticBounds) {
			continue
		}
		staticBox := engine.GetComponent[*components.BoxCollider](static)
		if staticBox == nil {
			continue
		}

		if sphere != nil {
			w.resolveSphereVsStaticBox(obj, static, rb, sphere, staticBox)
		} else {
			w.resolveBoxVsStaticBox(obj, static, rb, box, staticBox)
		}
	}
}

func (w *World) resolveSphereVsStaticBox(obj, static *engine.GameObject, rb *components.Rigidbody, sphere *components.SphereCollider, box *components.BoxCollider) {
	sphereCenter := obj.Transform.Position
	obb := NewOBBFromBox(box.GetCenter(), box.Size, static.WorldRotation(), static.WorldScale())

	closest := obb.ClosestPoint(sphereCenter)
	diff := rl.Vector3Subtract(sphereCenter, closest)
	dist := rl.Vector3Length(diff)

	if dist >= sphere.Radius || dist < 0.0001 {
		return
	}

	// Normal points from box to sphere
	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := sphere.Radius - dist

	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(normal, penetration))
	w.applyStaticContact(rb, normal, rl.Vector3Scale(normal, -sphere.Radius), 30.0)
}

func (w *World) resolveBoxVsStaticBox(obj, static *engine.GameObject, rb *components.Rigidbody, box, staticBox *components.BoxCollider) {
	obbObj := NewOBBFromBox(box.GetCenter(), box.Size, obj.WorldRotation(), obj.WorldScale())
	obbStatic := NewOBBFromBox(staticBox.GetCenter(), staticBox.Size, static.WorldRotation(), static.WorldScale())

	pushOut := obbObj.Resolve(obbStatic)
	if pushOut == (rl.Vector3{}) {
		return
	}

	// Push fully out (static doesn't move)
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, pushOut)

	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	normal := rl.Vector3Scale(pushOut, 1/pushLen)

	halfSize := rl.Vector3{X: box.Size.X / 2, Y: box.Size.Y / 2, Z: box.Size.Z / 2}
	w.applyStaticContact(rb, normal, estimateContactPoint(halfSize, rl.Vector3Scale(normal, -1)), 500.0)
}

// applyStaticContact removes the body's velocity along the contact normal
// (restitution adds the bounce back), applies ground friction, and spins the
// body from the off-center impulse.
func (w *World) applyStaticContact(rb *components.Rigidbody, normal, contactArm rl.Vector3, torqueScale float32) {
	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, normal)
	if velAlongNormal >= 0 {
		return
	}

	impulse := rl.Vector3Scale(normal, -(1+rb.Bounciness)*velAlongNormal)
	rb.Velocity = rl.Vector3Add(rb.Velocity, impulse)

	// Friction perpendicular to an upward-facing contact
	if normal.Y > 0.5 {
		rb.Velocity.X *= (1 - rb.Friction)
		rb.Velocity.Z *= (1 - rb.Friction)
	}

	torque := rl.Vector3CrossProduct(contactArm, impulse)
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, rl.Vector3Scale(torque, torqueScale/rb.Mass))

	if normal.Y > 0.5 {
		rb.AngularVelocity.X *= (1 - rb.Friction*0.5)
		rb.AngularVelocity.Z *= (1 - rb.Friction*0.5)
	}
}

// contactImpulse computes the restitution impulse along the contact normal
// for two dynamic bodies. Returns false when they already separate.
func contactImpulse(rbA, rbB *components.Rigidbody, normal rl.Vector3) (rl.Vector3, bool) {
	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// Only resolve if bodies are moving toward each other
	if velAlongNormal > 0 {
		return rl.Vector3{}, false
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= (1/rbA.Mass + 1/rbB.Mass)

	return rl.Vector3Scale(normal, j), true
}

// wakeOnContact wakes sleeping bodies when the contact has significant
// relative velocity. Micro-collisions don't wake settled stacks.
func wakeOnContact(rbA, rbB *components.Rigidbody) {
	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	if rl.Vector3Length(relVel) <= components.SleepVelocityThreshold*2.0 {
		return
	}
	if rbA.IsSleeping {
		rbA.Wake()
	}
	if rbB.IsSleeping {
		rbB.Wake()
	}
}

// estimateContactPoint estimates the contact point on a box surface, relative
// to its center, given the push direction.
func estimateContactPoint(halfSize, pushDir rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: -pushDir.X * halfSize.X,
		Y: -pushDir.Y * halfSize.Y,
		Z: -pushDir.Z * halfSize.Z,
	}
}
