package core

// InvalidGeometryID marks a geometry, primitive or instance id as absent.
// A HitResult whose GeomID equals it is a miss.
const InvalidGeometryID = ^uint32(0)

// HitResult is the answer to a single ray query
type HitResult struct {
	GeomID uint32  // Geometry id within the scene that was hit
	PrimID uint32  // Primitive (quad) index within that geometry
	InstID uint32  // Instance id, InvalidGeometryID unless hit through an instance
	Ng     Vec3    // Geometric normal, not normalized
	U, V   float64 // Surface parameters of the hit within the primitive
	T      float64 // Ray parameter at the hit
}

// NewMissResult returns a result with every id set to InvalidGeometryID
func NewMissResult() HitResult {
	return HitResult{
		GeomID: InvalidGeometryID,
		PrimID: InvalidGeometryID,
		InstID: InvalidGeometryID,
	}
}

// IsHit reports whether the result describes a hit
func (h HitResult) IsHit() bool {
	return h.GeomID != InvalidGeometryID
}

// HasInstance reports whether the hit was found through an instance
func (h HitResult) HasInstance() bool {
	return h.IsHit() && h.InstID != InvalidGeometryID
}
