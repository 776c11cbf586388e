package components

import (
	"playground3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

// MeshRenderer pairs a scene object with its visual mesh. Construction is
// pure data so scenes can be assembled before a GL context exists; Load
// creates the GPU-side model and must run after the window is open.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3

	model  rl.Model
	loaded bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

// Load generates the mesh and binds the lighting shader. Requires an open
// window.
func (m *MeshRenderer) Load(shader rl.Shader) {
	if m.loaded {
		return
	}

	var mesh rl.Mesh
	switch m.MeshType {
	case MeshSphere:
		mesh = rl.GenMeshSphere(m.Size.X, 24, 24)
	case MeshPlane:
		mesh = rl.GenMeshPlane(m.Size.X, m.Size.Z, 1, 1)
	default:
		mesh = rl.GenMeshCube(m.Size.X, m.Size.Y, m.Size.Z)
	}

	m.model = rl.LoadModelFromMesh(mesh)
	m.model.Materials.Shader = shader
	m.model.Materials.Maps.Color = m.Color
	m.loaded = true
}

// Loaded reports whether the GPU-side model exists yet.
func (m *MeshRenderer) Loaded() bool {
	return m.loaded
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active || !m.loaded {
		return
	}

	// Combine: scale -> rotate -> translate
	scale := g.Transform.Scale
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	rot := g.Transform.Rotation
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	pos := g.Transform.Position
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	m.model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.model, rl.Vector3Zero(), 1.0, rl.White)
}

func (m *MeshRenderer) Unload() {
	if m.loaded {
		rl.UnloadModel(m.model)
		m.loaded = false
	}
}
