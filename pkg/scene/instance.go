package scene

import (
	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/geometry"
)

// instance is a translated reference to a committed child scene
type instance struct {
	id          uint32
	child       *Scene
	translation core.Vec3
}

func (inst *instance) BoundingBox() core.AABB {
	return inst.child.BoundingBox().Translate(inst.translation)
}

// Intersect moves the ray into the child's space; a pure translation keeps
// both the ray parameter and the geometric normal unchanged.
func (inst *instance) Intersect(ray core.Ray, tMax float64, ctx *geometry.IntersectContext, hit *core.HitResult) bool {
	local := ray
	local.Origin = ray.Origin.Subtract(inst.translation)
	local.TMax = tMax

	prev := ctx.EnterInstance(inst.id)
	defer ctx.LeaveInstance(prev)

	return inst.child.bvh.Intersect(local, ctx, hit)
}
