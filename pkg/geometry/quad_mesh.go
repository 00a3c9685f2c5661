package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/stray/pkg/core"
)

// ErrInvalidGeometryBuffer is returned for empty or inconsistent vertex/index buffers
var ErrInvalidGeometryBuffer = errors.New("invalid geometry buffer")

// QuadMesh is a set of quads over a shared vertex buffer. Every four
// consecutive indices form one quad. The buffers are shared with the
// caller, not copied, and must not change once the mesh is committed.
type QuadMesh struct {
	Vertices []core.Vec3
	Indices  []int
}

// NewQuadMesh validates the buffers and wraps them in a mesh
func NewQuadMesh(vertices []core.Vec3, indices []int) (*QuadMesh, error) {
	m := &QuadMesh{Vertices: vertices, Indices: indices}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that the mesh has vertices, whole quads, and only
// in-range indices. Errors wrap ErrInvalidGeometryBuffer.
func (m *QuadMesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("%w: empty vertex buffer", ErrInvalidGeometryBuffer)
	}
	if len(m.Indices) == 0 {
		return fmt.Errorf("%w: empty index buffer", ErrInvalidGeometryBuffer)
	}
	if len(m.Indices)%4 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 4", ErrInvalidGeometryBuffer, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d out of range [0,%d)",
				ErrInvalidGeometryBuffer, idx, i, len(m.Vertices))
		}
	}
	return nil
}

// QuadCount returns the number of quads in the mesh
func (m *QuadMesh) QuadCount() int {
	return len(m.Indices) / 4
}

// Quad returns the four corners of quad i
func (m *QuadMesh) Quad(i int) (v0, v1, v2, v3 core.Vec3) {
	idx := m.Indices[4*i : 4*i+4]
	return m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]], m.Vertices[idx[3]]
}

// Primitives returns one BVH primitive per quad, tagged with geomID
func (m *QuadMesh) Primitives(geomID uint32) []Primitive {
	prims := make([]Primitive, m.QuadCount())
	for i := range prims {
		prims[i] = &quad{mesh: m, geomID: geomID, primID: uint32(i)}
	}
	return prims
}

// quad is a single quad of a mesh, read straight from the shared buffers
type quad struct {
	mesh   *QuadMesh
	geomID uint32
	primID uint32
}

// BoundingBox returns the quad's bounds, padded so axis-aligned quads keep volume
func (q *quad) BoundingBox() core.AABB {
	v0, v1, v2, v3 := q.mesh.Quad(int(q.primID))
	return core.NewAABBFromPoints(v0, v1, v2, v3).Expand(1e-6)
}

// Intersect splits the quad into triangles (v0,v1,v3) and (v2,v3,v1). Hits
// on the second triangle report (1-u, 1-v) so that u,v span the whole quad.
func (q *quad) Intersect(ray core.Ray, tMax float64, ctx *IntersectContext, hit *core.HitResult) bool {
	v0, v1, v2, v3 := q.mesh.Quad(int(q.primID))

	t, u, v, ng, ok := intersectTriangle(ray, ray.TMin, tMax, v0, v1, v3)
	if !ok {
		t, u, v, ng, ok = intersectTriangle(ray, ray.TMin, tMax, v2, v3, v1)
		if !ok {
			return false
		}
		u, v = 1-u, 1-v
	}

	*hit = core.HitResult{
		GeomID: q.geomID,
		PrimID: q.primID,
		InstID: ctx.instID,
		Ng:     ng,
		U:      u,
		V:      v,
		T:      t,
	}
	return true
}

// intersectTriangle is a double-sided Möller-Trumbore test. The returned
// normal is (v1-v0) x (v2-v0), unnormalized. Barycentric bounds are widened
// by edgeTolerance so rays through a shared edge cannot fall between the two
// triangles, or between neighbouring quads.
func intersectTriangle(ray core.Ray, tMin, tMax float64, v0, v1, v2 core.Vec3) (t, u, v float64, ng core.Vec3, ok bool) {
	const (
		epsilon       = 1e-12
		edgeTolerance = 1e-9
	)

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return 0, 0, 0, core.Vec3{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u = f * s.Dot(h)
	if u < -edgeTolerance || u > 1.0+edgeTolerance {
		return 0, 0, 0, core.Vec3{}, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < -edgeTolerance || u+v > 1.0+edgeTolerance {
		return 0, 0, 0, core.Vec3{}, false
	}

	t = f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return 0, 0, 0, core.Vec3{}, false
	}

	u = min(max(u, 0), 1)
	v = min(max(v, 0), 1)
	return t, u, v, edge1.Cross(edge2), true
}
