package scene

import (
	"fmt"
	"sort"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/geometry"
)

// Preset bundles a built-in scene with the camera and debug ray it is viewed with
type Preset struct {
	Name            string
	Description     string
	Build           func() (*Scene, error)
	CameraOrigin    core.Vec3
	CameraDirection core.Vec3
	Width, Height   int
	DebugOrigin     core.Vec3
	DebugDirection  core.Vec3
}

var presets = map[string]Preset{
	"open-box": {
		Name:            "open-box",
		Description:     "Box with floor, ceiling, back and side walls, open towards the camera",
		Build:           NewOpenBoxScene,
		CameraOrigin:    core.NewVec3(0, 0, 1.2),
		CameraDirection: core.NewVec3(0, 0, -1),
		Width:           640,
		Height:          360,
		DebugOrigin:     core.NewVec3(0, 0, 1.2),
		DebugDirection:  core.NewVec3(0, 0, -1),
	},
	"single-quad": {
		Name:            "single-quad",
		Description:     "One non-parallelogram quad at z=-1",
		Build:           NewSingleQuadScene,
		CameraOrigin:    core.NewVec3(0, 0, 1.2),
		CameraDirection: core.NewVec3(0, 0, -1),
		Width:           640,
		Height:          360,
		DebugOrigin:     core.NewVec3(0.12, 0.03, 0.01),
		DebugDirection:  core.NewVec3(-0.03, 0.05, -0.94),
	},
	"box-instances": {
		Name:            "box-instances",
		Description:     "Two instanced copies of the open box side by side",
		Build:           NewBoxInstancesScene,
		CameraOrigin:    core.NewVec3(0, 0, 1.2),
		CameraDirection: core.NewVec3(0, 0, -1),
		Width:           640,
		Height:          360,
		DebugOrigin:     core.NewVec3(0.6, 0, 1.2),
		DebugDirection:  core.NewVec3(0, 0, -1),
	},
}

// LookupPreset returns the preset registered under name
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown scene %q (available: %v)", name, PresetNames())
	}
	return p, nil
}

// PresetNames returns the names of all built-in scenes, sorted
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildScene builds and commits the built-in scene called name
func BuildScene(name string) (*Scene, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	return p.Build()
}

// NewOpenBoxScene creates the open box: floor, ceiling, right, back and
// left walls, with the side facing +Z left open.
func NewOpenBoxScene() (*Scene, error) {
	vertices := []core.Vec3{
		{X: 0.5, Y: -0.5, Z: -1.0}, // bottom
		{X: 0.5, Y: -0.5, Z: -2.0},
		{X: -0.5, Y: -0.5, Z: -2.0},
		{X: -0.5, Y: -0.5, Z: -1.0},
		{X: 0.5, Y: 0.5, Z: -1.0}, // top
		{X: 0.5, Y: 0.5, Z: -2.0},
		{X: -0.5, Y: 0.5, Z: -2.0},
		{X: -0.5, Y: 0.5, Z: -1.0},
	}
	indices := []int{
		0, 1, 2, 3, // floor
		4, 7, 6, 5, // ceiling
		0, 4, 5, 1, // right wall
		1, 5, 6, 2, // back wall
		3, 2, 6, 7, // left wall
	}
	return newMeshScene(vertices, indices)
}

// NewSingleQuadScene creates a single quad whose fourth corner is pulled
// in, so it is not a parallelogram
func NewSingleQuadScene() (*Scene, error) {
	vertices := []core.Vec3{
		{X: 0.5, Y: -0.5, Z: -1.0},
		{X: 0.5, Y: 0.5, Z: -1.0},
		{X: -0.5, Y: 0.5, Z: -1.0},
		{X: -0.5, Y: -0.25, Z: -1.0},
	}
	return newMeshScene(vertices, []int{0, 1, 2, 3})
}

// NewBoxInstancesScene places two instances of the open box, shifted
// left and right, pushed back far enough to stay in view
func NewBoxInstancesScene() (*Scene, error) {
	box, err := NewOpenBoxScene()
	if err != nil {
		return nil, err
	}

	s := New()
	for _, offset := range []core.Vec3{{X: -0.6, Y: 0, Z: -1}, {X: 0.6, Y: 0, Z: -1}} {
		if _, err := s.AttachInstance(box, offset); err != nil {
			return nil, err
		}
	}
	if err := s.Commit(); err != nil {
		return nil, err
	}
	return s, nil
}

func newMeshScene(vertices []core.Vec3, indices []int) (*Scene, error) {
	mesh, err := geometry.NewQuadMesh(vertices, indices)
	if err != nil {
		return nil, err
	}

	s := New()
	if _, err := s.AttachGeometry(mesh); err != nil {
		return nil, err
	}
	if err := s.Commit(); err != nil {
		return nil, err
	}
	return s, nil
}
