// Package world assembles the playground scene: descriptors for every object,
// loaded from an optional YAML file with compiled-in defaults, turned into
// GameObjects wired to the physics world and renderer.
package world

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Vec3 is the YAML-friendly vector type used by scene files.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3) ToRaylib() rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// ColorDesc is an RGB triple; alpha is always opaque.
type ColorDesc struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

func (c ColorDesc) ToRaylib() rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// ObjectDesc describes one box-shaped scene object. Mass only matters for
// dynamic boxes; statics ignore it.
type ObjectDesc struct {
	Name     string    `yaml:"name"`
	Position Vec3      `yaml:"position"`
	Size     Vec3      `yaml:"size"`
	Rotation Vec3      `yaml:"rotation"`
	Color    ColorDesc `yaml:"color"`
	Mass     float32   `yaml:"mass"`
}

type PlayerConfig struct {
	Mass          float32 `yaml:"mass"`
	Radius        float32 `yaml:"radius"`
	Spawn         Vec3    `yaml:"spawn"`
	MoveSpeed     float32 `yaml:"move_speed"`
	JumpForce     float32 `yaml:"jump_force"`
	JumpThreshold float32 `yaml:"jump_threshold"`
	Sensitivity   float32 `yaml:"sensitivity"`
}

type Config struct {
	Gravity   Vec3         `yaml:"gravity"`
	Player    PlayerConfig `yaml:"player"`
	Ground    ObjectDesc   `yaml:"ground"`
	Platforms []ObjectDesc `yaml:"platforms"`
	Boxes     []ObjectDesc `yaml:"boxes"`
	Walls     []ObjectDesc `yaml:"walls"`
}

// Default returns the compiled-in playground: a flat ground slab, a stair of
// platforms, a handful of dynamic crates, and four boundary walls.
func Default() Config {
	return Config{
		Gravity: Vec3{Y: -9.8},
		Player: PlayerConfig{
			Mass:          5,
			Radius:        1.3,
			Spawn:         Vec3{Y: 5},
			MoveSpeed:     8,
			JumpForce:     5,
			JumpThreshold: 0.1,
			Sensitivity:   0.1,
		},
		Ground: ObjectDesc{
			Name:     "Ground",
			Position: Vec3{Y: -0.5},
			Size:     Vec3{X: 40, Y: 1, Z: 40},
			Color:    ColorDesc{R: 90, G: 110, B: 90},
		},
		Platforms: []ObjectDesc{
			{Name: "Platform1", Position: Vec3{X: 6, Y: 1.5, Z: -6}, Size: Vec3{X: 4, Y: 0.5, Z: 4}, Color: ColorDesc{R: 120, G: 120, B: 160}},
			{Name: "Platform2", Position: Vec3{X: -6, Y: 3, Z: -10}, Size: Vec3{X: 4, Y: 0.5, Z: 4}, Color: ColorDesc{R: 120, G: 120, B: 160}},
			{Name: "Platform3", Position: Vec3{Y: 4.5, Z: -14}, Size: Vec3{X: 4, Y: 0.5, Z: 4}, Color: ColorDesc{R: 120, G: 120, B: 160}},
		},
		Boxes: []ObjectDesc{
			{Name: "Crate1", Position: Vec3{X: 2, Y: 1, Z: -4}, Size: Vec3{X: 1, Y: 1, Z: 1}, Color: ColorDesc{R: 200, G: 140, B: 80}, Mass: 1},
			{Name: "Crate2", Position: Vec3{X: -3, Y: 1, Z: -5}, Size: Vec3{X: 1, Y: 1, Z: 1}, Color: ColorDesc{R: 200, G: 140, B: 80}, Mass: 1},
			{Name: "Crate3", Position: Vec3{X: -3.2, Y: 2.2, Z: -5}, Size: Vec3{X: 1, Y: 1, Z: 1}, Color: ColorDesc{R: 210, G: 160, B: 90}, Mass: 1},
			{Name: "Crate4", Position: Vec3{X: 5, Y: 1, Z: 3}, Size: Vec3{X: 1.5, Y: 1.5, Z: 1.5}, Color: ColorDesc{R: 180, G: 120, B: 70}, Mass: 2},
			{Name: "Crate5", Position: Vec3{X: -7, Y: 1, Z: 4}, Size: Vec3{X: 1, Y: 1, Z: 1}, Color: ColorDesc{R: 200, G: 140, B: 80}, Mass: 1},
		},
		Walls: []ObjectDesc{
			{Name: "WallNorth", Position: Vec3{Y: 2, Z: -20}, Size: Vec3{X: 40, Y: 4, Z: 1}, Color: ColorDesc{R: 100, G: 100, B: 110}},
			{Name: "WallSouth", Position: Vec3{Y: 2, Z: 20}, Size: Vec3{X: 40, Y: 4, Z: 1}, Color: ColorDesc{R: 100, G: 100, B: 110}},
			{Name: "WallEast", Position: Vec3{X: 20, Y: 2}, Size: Vec3{X: 1, Y: 4, Z: 40}, Color: ColorDesc{R: 100, G: 100, B: 110}},
			{Name: "WallWest", Position: Vec3{X: -20, Y: 2}, Size: Vec3{X: 1, Y: 4, Z: 40}, Color: ColorDesc{R: 100, G: 100, B: 110}},
		},
	}
}

// Load reads a scene file and overlays it on the defaults. Malformed files
// fail fast; a demo with a half-applied scene is worse than no demo.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scene file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scene file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid scene file %s: %w", path, err)
	}

	log.Info().Str("path", path).
		Int("platforms", len(cfg.Platforms)).
		Int("boxes", len(cfg.Boxes)).
		Int("walls", len(cfg.Walls)).
		Msg("scene file loaded")
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Player.Radius <= 0 {
		return fmt.Errorf("player radius must be positive, got %v", c.Player.Radius)
	}
	if c.Player.Mass <= 0 {
		return fmt.Errorf("player mass must be positive, got %v", c.Player.Mass)
	}
	if c.Player.MoveSpeed <= 0 {
		return fmt.Errorf("player move_speed must be positive, got %v", c.Player.MoveSpeed)
	}
	if c.Player.JumpThreshold <= 0 {
		return fmt.Errorf("player jump_threshold must be positive, got %v", c.Player.JumpThreshold)
	}
	if c.Player.Sensitivity <= 0 {
		return fmt.Errorf("player sensitivity must be positive, got %v", c.Player.Sensitivity)
	}
	if c.Ground.Size.X <= 0 || c.Ground.Size.Y <= 0 || c.Ground.Size.Z <= 0 {
		return fmt.Errorf("ground size must be positive on all axes")
	}
	for _, box := range c.Boxes {
		if box.Mass <= 0 {
			return fmt.Errorf("dynamic box %q needs a positive mass", box.Name)
		}
	}
	return nil
}
