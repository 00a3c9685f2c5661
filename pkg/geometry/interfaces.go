package geometry

import "github.com/df07/stray/pkg/core"

// Primitive is anything the BVH can store in a leaf
type Primitive interface {
	BoundingBox() core.AABB
	// Intersect tests the ray against the primitive within [ray.TMin, tMax].
	// On a hit it overwrites hit and returns true.
	Intersect(ray core.Ray, tMax float64, ctx *IntersectContext, hit *core.HitResult) bool
}

// IntersectContext is the per-worker query token. It carries traversal
// scratch space and the id of the instance currently being traversed, so
// it can be reused across any number of queries but must not be shared by
// concurrent callers.
type IntersectContext struct {
	stack  []*bvhNode
	instID uint32
}

// NewIntersectContext creates a context ready for use
func NewIntersectContext() *IntersectContext {
	return &IntersectContext{
		stack:  make([]*bvhNode, 0, 64),
		instID: core.InvalidGeometryID,
	}
}

// EnterInstance marks subsequent hits as found through instance id and
// returns the previous instance id for LeaveInstance.
func (ctx *IntersectContext) EnterInstance(id uint32) uint32 {
	prev := ctx.instID
	ctx.instID = id
	return prev
}

// LeaveInstance restores the instance id returned by EnterInstance
func (ctx *IntersectContext) LeaveInstance(prev uint32) {
	ctx.instID = prev
}
