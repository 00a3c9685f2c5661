package core

import "math"

const (
	// RayEpsilon is the default near bound of a ray; it keeps a ray from
	// re-hitting the surface it was emitted from.
	RayEpsilon = 0x1p-52
	// RayInfinity is the default far bound, meaning "no far bound".
	RayInfinity = math.MaxFloat64
)

// Ray represents a ray with an origin, a direction and the parametric
// interval [TMin, TMax] in which hits are accepted
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a new unbounded ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: RayEpsilon, TMax: RayInfinity}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
