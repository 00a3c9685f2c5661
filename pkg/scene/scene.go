package scene

import (
	"errors"
	"fmt"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/geometry"
)

var (
	// ErrSceneCommitted is returned when geometry is attached to, or commit is
	// called again on, a scene that has already been committed
	ErrSceneCommitted = errors.New("scene already committed")
	// ErrSceneNotCommitted is returned when a scene is used before commit
	ErrSceneNotCommitted = errors.New("scene not committed")
	// ErrEmptyScene is returned when committing a scene with no geometry
	ErrEmptyScene = errors.New("scene has no geometry")
)

// Scene is the ray query service: geometry is attached, the scene is
// committed once, and from then on it is read-only and answers Intersect
// from any number of goroutines.
type Scene struct {
	meshes    []*geometry.QuadMesh
	instances []*instance
	bvh       *geometry.BVH
	committed bool
}

// New creates an empty, uncommitted scene
func New() *Scene {
	return &Scene{}
}

// AttachGeometry adds a quad mesh and returns its geometry id. Ids are
// assigned in attach order starting at 0.
func (s *Scene) AttachGeometry(mesh *geometry.QuadMesh) (uint32, error) {
	if s.committed {
		return core.InvalidGeometryID, ErrSceneCommitted
	}
	if mesh == nil {
		return core.InvalidGeometryID, fmt.Errorf("%w: nil mesh", geometry.ErrInvalidGeometryBuffer)
	}
	s.meshes = append(s.meshes, mesh)
	return uint32(len(s.meshes) - 1), nil
}

// AttachInstance places a committed child scene into this scene, moved by
// translation, and returns its instance id. Hits inside the child report the
// child's geometry id together with this instance id.
func (s *Scene) AttachInstance(child *Scene, translation core.Vec3) (uint32, error) {
	if s.committed {
		return core.InvalidGeometryID, ErrSceneCommitted
	}
	if child == nil || !child.committed {
		return core.InvalidGeometryID, fmt.Errorf("instance child: %w", ErrSceneNotCommitted)
	}
	id := uint32(len(s.instances))
	s.instances = append(s.instances, &instance{id: id, child: child, translation: translation})
	return id, nil
}

// Commit validates every attached mesh and builds the acceleration
// structure. It may only be called once. A failed commit leaves the scene
// uncommitted.
func (s *Scene) Commit() error {
	if s.committed {
		return ErrSceneCommitted
	}
	if len(s.meshes) == 0 && len(s.instances) == 0 {
		return ErrEmptyScene
	}

	for geomID, mesh := range s.meshes {
		if err := mesh.Validate(); err != nil {
			return fmt.Errorf("geometry %d: %w", geomID, err)
		}
	}

	var prims []geometry.Primitive
	for geomID, mesh := range s.meshes {
		prims = append(prims, mesh.Primitives(uint32(geomID))...)
	}
	for _, inst := range s.instances {
		prims = append(prims, inst)
	}

	s.bvh = geometry.NewBVH(prims)
	s.committed = true
	return nil
}

// Committed reports whether Commit has succeeded
func (s *Scene) Committed() bool {
	return s.committed
}

// PrimitiveCount returns the number of quads and instances in the scene
func (s *Scene) PrimitiveCount() int {
	if s.bvh == nil {
		return 0
	}
	return s.bvh.PrimitiveCount()
}

// BoundingBox returns the bounds of the committed scene
func (s *Scene) BoundingBox() core.AABB {
	if s.bvh == nil {
		return core.AABB{}
	}
	return s.bvh.BoundingBox()
}

// Intersect returns the nearest hit along ray within [ray.TMin, ray.TMax],
// or a result whose GeomID is core.InvalidGeometryID. An uncommitted scene
// misses every ray.
func (s *Scene) Intersect(ray core.Ray, ctx *geometry.IntersectContext) core.HitResult {
	hit := core.NewMissResult()
	if !s.committed {
		return hit
	}
	s.bvh.Intersect(ray, ctx, &hit)
	return hit
}
