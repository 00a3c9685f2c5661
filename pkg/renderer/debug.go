package renderer

import (
	"fmt"
	"io"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/geometry"
)

// DebugRay is a single hand-placed ray, independent of any camera
type DebugRay struct {
	Origin    core.Vec3
	Direction core.Vec3 // Normalized before tracing
}

// TraceDebugRay fires one ray into scene and returns the raw answer
func TraceDebugRay(scene Intersector, ray DebugRay) core.HitResult {
	return scene.Intersect(core.NewRay(ray.Origin, ray.Direction.Normalize()), geometry.NewIntersectContext())
}

// WriteHitReport writes a human-readable description of hit. The instance
// line only appears for hits found through an instance.
func WriteHitReport(w io.Writer, hit core.HitResult) error {
	if !hit.IsHit() {
		_, err := fmt.Fprintln(w, "Ray missed the scene")
		return err
	}

	ew := &errWriter{w: w}
	ew.printf("Ray hit primitive %d\n", hit.PrimID)
	ew.printf("\tu:      %g\n", hit.U)
	ew.printf("\tv:      %g\n", hit.V)
	ew.printf("\tgeomID: %d\n", hit.GeomID)
	ew.printf("\tprimID: %d\n", hit.PrimID)
	if hit.HasInstance() {
		ew.printf("\tinstID: %d\n", hit.InstID)
	}
	ew.printf("\tNg:     (%g, %g, %g)\n", hit.Ng.X, hit.Ng.Y, hit.Ng.Z)
	ew.printf("\tt:      %g\n", hit.T)
	return ew.err
}

// errWriter keeps the first write error and skips everything after it
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
