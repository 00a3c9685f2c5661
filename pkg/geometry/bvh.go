package geometry

import (
	"sort"

	"github.com/df07/stray/pkg/core"
)

// bvhNode represents a node in the Bounding Volume Hierarchy
type bvhNode struct {
	bbox       core.AABB
	left       *bvhNode
	right      *bvhNode
	primitives []Primitive // Primitives for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-primitive intersection.
// It is immutable once built and safe for concurrent queries, provided each
// caller uses its own IntersectContext.
type BVH struct {
	root  *bvhNode
	count int
}

// Leaf threshold: if we have this many or fewer primitives, store them in a leaf node
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(primitives []Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{}
	}

	// Sorting happens in place, so work on a copy
	prims := make([]Primitive, len(primitives))
	copy(prims, primitives)

	return &BVH{root: buildBVH(prims), count: len(prims)}
}

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(prims []Primitive) *bvhNode {
	bbox := prims[0].BoundingBox()
	for _, p := range prims[1:] {
		bbox = bbox.Union(p.BoundingBox())
	}

	if len(prims) <= leafThreshold {
		return &bvhNode{bbox: bbox, primitives: prims}
	}

	axis := bbox.LongestAxis()
	sort.Slice(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Center().Axis(axis) < prims[j].BoundingBox().Center().Axis(axis)
	})

	mid := len(prims) / 2
	return &bvhNode{
		bbox:  bbox,
		left:  buildBVH(prims[:mid]),
		right: buildBVH(prims[mid:]),
	}
}

// BoundingBox returns the bounds of everything in the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.root == nil {
		return core.AABB{}
	}
	return bvh.root.bbox
}

// PrimitiveCount returns the number of primitives the BVH was built from
func (bvh *BVH) PrimitiveCount() int {
	return bvh.count
}

// Intersect finds the nearest hit within [ray.TMin, ray.TMax].
// Traversal uses the context's stack from its current height upward, so a
// primitive may start a nested traversal (an instance) with the same context.
func (bvh *BVH) Intersect(ray core.Ray, ctx *IntersectContext, hit *core.HitResult) bool {
	if bvh.root == nil {
		return false
	}

	base := len(ctx.stack)
	ctx.stack = append(ctx.stack, bvh.root)
	closest := ray.TMax
	found := false

	for len(ctx.stack) > base {
		node := ctx.stack[len(ctx.stack)-1]
		ctx.stack = ctx.stack[:len(ctx.stack)-1]

		if !node.bbox.Hit(ray, ray.TMin, closest) {
			continue
		}

		if node.primitives != nil {
			for _, p := range node.primitives {
				if p.Intersect(ray, closest, ctx, hit) {
					found = true
					closest = hit.T
				}
			}
			continue
		}

		ctx.stack = append(ctx.stack, node.left, node.right)
	}

	return found
}
