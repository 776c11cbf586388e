package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, -9.8, cfg.Gravity.Y, 1e-4)
	assert.InDelta(t, 5, cfg.Player.Mass, 1e-4)
	assert.InDelta(t, 1.3, cfg.Player.Radius, 1e-4)
	assert.InDelta(t, 5, cfg.Player.Spawn.Y, 1e-4)
	assert.InDelta(t, 8, cfg.Player.MoveSpeed, 1e-4)
	assert.InDelta(t, 5, cfg.Player.JumpForce, 1e-4)
	assert.InDelta(t, 0.1, cfg.Player.JumpThreshold, 1e-4)
	assert.NotEmpty(t, cfg.Platforms)
	assert.NotEmpty(t, cfg.Boxes)
	assert.Len(t, cfg.Walls, 4)
}

func writeSceneFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeSceneFile(t, `
gravity: {x: 0, y: -20, z: 0}
player:
  mass: 2
  radius: 0.5
  spawn: {x: 1, y: 10, z: 0}
  move_speed: 12
  jump_force: 8
  jump_threshold: 0.2
  sensitivity: 0.05
boxes:
  - name: OnlyCrate
    position: {x: 0, y: 1, z: -3}
    size: {x: 1, y: 1, z: 1}
    color: {r: 255, g: 0, b: 0}
    mass: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, -20, cfg.Gravity.Y, 1e-4)
	assert.InDelta(t, 12, cfg.Player.MoveSpeed, 1e-4)
	require.Len(t, cfg.Boxes, 1)
	assert.Equal(t, "OnlyCrate", cfg.Boxes[0].Name)
	assert.InDelta(t, 3, cfg.Boxes[0].Mass, 1e-4)

	// Untouched sections keep their defaults
	assert.Len(t, cfg.Walls, 4)
	assert.InDelta(t, 40, cfg.Ground.Size.X, 1e-4)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeSceneFile(t, "gravity: [not a vector")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeSceneFile(t, `
player:
  radius: -1
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "radius")
}

func TestValidateRejectsMasslessCrate(t *testing.T) {
	cfg := Default()
	cfg.Boxes[0].Mass = 0
	assert.ErrorContains(t, cfg.Validate(), "mass")
}
