// Package game runs the playground: window lifecycle, the per-frame
// input -> physics -> scene -> render pipeline, and the HUD.
package game

import (
	"time"

	"playground3d/internal/input"
	"playground3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
)

type Game struct {
	Width  int32
	Height int32
	Debug  bool

	cfg        world.Config
	tracker    *input.Tracker
	playground *world.Playground
	renderer   *world.Renderer

	// Frame timing for the debug panel (ms)
	updateMs float64
	shadowMs float64
	drawMs   float64
}

func New(cfg world.Config, width, height int32, debug bool) *Game {
	return &Game{
		Width:  width,
		Height: height,
		Debug:  debug,
		cfg:    cfg,
	}
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(g.Width, g.Height, "Physics Playground")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	g.tracker = input.NewTracker()
	g.tracker.Attach()
	defer g.tracker.Detach()

	g.playground = world.Build(g.cfg, g.tracker)
	defer g.playground.Unload()

	// GPU setup has to wait for the GL context
	g.renderer = world.NewRenderer()
	g.renderer.Initialize(g.playground.FloorSize)
	defer g.renderer.Unload()
	g.renderer.SetLight(g.playground.Light)
	g.playground.LoadModels(g.renderer.Shader)

	log.Info().
		Int32("width", g.Width).
		Int32("height", g.Height).
		Msg("window open, entering main loop")

	for !rl.WindowShouldClose() {
		g.update()
		g.draw()
	}
}

// update runs one simulation frame: poll input, step physics (which applies
// the previous frame's velocity command and publishes poses), then tick the
// scene so the controller stages the next command from fresh poses.
func (g *Game) update() {
	start := time.Now()
	deltaTime := rl.GetFrameTime()

	g.tracker.Poll()
	g.playground.Physics.Step(deltaTime)
	g.playground.Scene.Update(deltaTime)

	if rl.IsKeyPressed(rl.KeyF1) {
		g.Debug = !g.Debug
	}

	g.updateMs = float64(time.Since(start).Microseconds()) / 1000.0
}

func (g *Game) draw() {
	camera := g.playground.Camera.GetRaylibCamera()

	shadowStart := time.Now()
	g.renderer.DrawShadowMap(g.playground.Scene.GameObjects)
	g.shadowMs = float64(time.Since(shadowStart).Microseconds()) / 1000.0

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.renderer.DrawWithShadows(camera.Position, g.playground.Scene.GameObjects)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.drawHUD()
	rl.EndDrawing()
}
