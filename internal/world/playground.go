package world

import (
	"playground3d/internal/components"
	"playground3d/internal/engine"
	"playground3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

// Playground owns the assembled scene and its physics world, plus direct
// handles to the pieces the game loop talks to every frame.
type Playground struct {
	Scene   *engine.Scene
	Physics *physics.World

	Player     *engine.GameObject
	Controller *components.PlayerController
	Camera     *components.Camera
	Look       *components.MouseLook
	Light      *components.DirectionalLight

	// Edge length of the ground slab; the renderer sizes its shadow
	// frustum from it.
	FloorSize float32

	// Radius of the player's sphere body; ray queries from the camera
	// start just outside it.
	PlayerRadius float32
}

// Build turns a Config into a live scene. No GL calls happen here, so scenes
// can be assembled headless; call LoadModels once a window exists.
func Build(cfg Config, src components.InputSource) *Playground {
	p := &Playground{
		Scene:     engine.NewScene("Playground"),
		Physics:   physics.NewWorld(cfg.Gravity.ToRaylib()),
		FloorSize: cfg.Ground.Size.X,
	}

	p.addStatic(cfg.Ground, "ground")
	for _, desc := range cfg.Platforms {
		p.addStatic(desc, "platform")
	}
	for _, desc := range cfg.Walls {
		p.addStatic(desc, "wall")
	}
	for _, desc := range cfg.Boxes {
		p.addCrate(desc)
	}
	p.addPlayer(cfg.Player, src)
	p.addLight()

	p.Scene.Start()

	log.Info().
		Int("dynamics", p.Physics.DynamicBodyCount()).
		Int("statics", p.Physics.StaticBodyCount()).
		Msg("playground built")
	return p
}

func (p *Playground) addStatic(desc ObjectDesc, tag string) {
	g := engine.NewGameObject(desc.Name)
	g.Transform.Position = desc.Position.ToRaylib()
	g.Transform.Rotation = desc.Rotation.ToRaylib()
	g.AddTag(tag)

	g.AddComponent(components.NewBoxCollider(desc.Size.ToRaylib()))
	g.AddComponent(components.NewMeshRenderer(components.MeshCube, desc.Color.ToRaylib(), desc.Size.ToRaylib()))

	p.Scene.AddGameObject(g)
	p.Physics.AddBody(g)
}

func (p *Playground) addCrate(desc ObjectDesc) {
	g := engine.NewGameObject(desc.Name)
	g.Transform.Position = desc.Position.ToRaylib()
	g.Transform.Rotation = desc.Rotation.ToRaylib()
	g.AddTag("crate")

	g.AddComponent(components.NewBoxCollider(desc.Size.ToRaylib()))
	g.AddComponent(components.NewMeshRenderer(components.MeshCube, desc.Color.ToRaylib(), desc.Size.ToRaylib()))

	rb := components.NewRigidbody()
	rb.Mass = desc.Mass
	g.AddComponent(rb)

	p.Scene.AddGameObject(g)
	p.Physics.AddBody(g)
}

func (p *Playground) addPlayer(cfg PlayerConfig, src components.InputSource) {
	g := engine.NewGameObject("Player")
	g.Transform.Position = cfg.Spawn.ToRaylib()
	g.AddTag("player")

	g.AddComponent(components.NewSphereCollider(cfg.Radius))
	p.PlayerRadius = cfg.Radius

	rb := components.NewRigidbody()
	rb.Mass = cfg.Mass
	rb.Bounciness = 0 // the player never bounces off the floor
	rb.CanSleep = false
	g.AddComponent(rb)

	p.Look = components.NewMouseLook()
	p.Look.Sensitivity = cfg.Sensitivity
	g.AddComponent(p.Look)

	p.Camera = components.NewCamera()
	g.AddComponent(p.Camera)

	p.Controller = components.NewPlayerController(src, p.Look)
	p.Controller.MoveSpeed = cfg.MoveSpeed
	p.Controller.JumpForce = cfg.JumpForce
	p.Controller.JumpThreshold = cfg.JumpThreshold
	p.Controller.Camera = p.Camera
	g.AddComponent(p.Controller)

	p.Player = g
	p.Scene.AddGameObject(g)
	p.Physics.AddBody(g)
}

func (p *Playground) addLight() {
	g := engine.NewGameObject("Sun")
	p.Light = components.NewDirectionalLight()
	g.AddComponent(p.Light)
	p.Scene.AddGameObject(g)
}

// LoadModels uploads every MeshRenderer's model and binds the lighting
// shader. Requires an open window.
func (p *Playground) LoadModels(shader rl.Shader) {
	for _, g := range p.Scene.GameObjects {
		if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
			mr.Load(shader)
		}
	}
}

// Unload releases every GPU-side model.
func (p *Playground) Unload() {
	for _, g := range p.Scene.GameObjects {
		if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
			mr.Unload()
		}
	}
}
