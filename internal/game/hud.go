package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func (g *Game) drawHUD() {
	rl.DrawText("WASD to move, Space to jump, Mouse to look", 10, 10, 20, rl.RayWhite)
	rl.DrawText("F1 to toggle debug view", 10, 35, 20, rl.Gray)
	rl.DrawFPS(10, 60)

	if g.Debug {
		g.drawDebugPanel()
		g.drawShadowMapPreview()
	}
}

func (g *Game) drawDebugPanel() {
	panel := rl.NewRectangle(10, 90, 280, 220)
	gui.Panel(panel, "Debug")

	line := func(i int, text string) {
		gui.Label(rl.NewRectangle(panel.X+10, panel.Y+30+float32(i)*22, panel.Width-20, 20), text)
	}

	ctrl := g.playground.Controller
	pos := ctrl.LastPosition()
	vel := ctrl.LastVelocity()

	line(0, fmt.Sprintf("Bodies: %d dynamic / %d static",
		g.playground.Physics.DynamicBodyCount(), g.playground.Physics.StaticBodyCount()))
	line(1, fmt.Sprintf("Position: (%.1f, %.1f, %.1f)", pos.X, pos.Y, pos.Z))
	line(2, fmt.Sprintf("Velocity: (%.1f, %.1f, %.1f)", vel.X, vel.Y, vel.Z))
	line(3, fmt.Sprintf("Grounded: %v", ctrl.Grounded()))
	line(4, fmt.Sprintf("Looking at: %s", g.lookTarget()))
	line(5, fmt.Sprintf("Update:  %.2f ms", g.updateMs))
	line(6, fmt.Sprintf("Shadows: %.2f ms", g.shadowMs))
	line(7, fmt.Sprintf("Draw:    %.2f ms", g.drawMs))
}

// lookTarget raycasts along the view direction, starting just outside the
// player's own collider so the ray can't hit it.
func (g *Game) lookTarget() string {
	x, y, z := g.playground.Look.GetLookDirection()
	dir := rl.Vector3{X: x, Y: y, Z: z}

	origin := rl.Vector3Add(g.playground.Camera.Position,
		rl.Vector3Scale(dir, g.playground.PlayerRadius+0.1))

	hit, ok := g.playground.Physics.Raycast(origin, dir, 50)
	if !ok {
		return "nothing"
	}
	return fmt.Sprintf("%s (%.1fm)", hit.GameObject.Name, hit.Distance)
}

func (g *Game) drawShadowMapPreview() {
	previewSize := int32(256)
	screenW := int32(rl.GetScreenWidth())

	rl.DrawTexturePro(
		g.renderer.ShadowMap.Depth,
		rl.Rectangle{Width: float32(g.renderer.ShadowMap.Depth.Width), Height: float32(-g.renderer.ShadowMap.Depth.Height)},
		rl.Rectangle{X: float32(screenW - previewSize - 10), Y: 10, Width: float32(previewSize), Height: float32(previewSize)},
		rl.Vector2{},
		0,
		rl.White,
	)
	rl.DrawRectangleLines(screenW-previewSize-10, 10, previewSize, previewSize, rl.Green)
	rl.DrawText("Shadow Map", screenW-previewSize-10, previewSize+15, 16, rl.Green)
}
