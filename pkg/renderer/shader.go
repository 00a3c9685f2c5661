package renderer

import (
	"math"

	"github.com/df07/stray/pkg/core"
)

// ShadingConfig controls the normal visualization
type ShadingConfig struct {
	// RawNormals skips normalizing the geometric normal before the
	// scale-and-bias. Only unit-area quads then stay within [0,1].
	RawNormals bool
}

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// ShadeNormal maps a hit to 0.5*n + 0.5 and a miss to black
func ShadeNormal(hit core.HitResult, config ShadingConfig) core.Vec3 {
	if !hit.IsHit() {
		return core.Vec3{}
	}

	n := hit.Ng
	if !config.RawNormals {
		n = n.Normalize()
	}
	return n.Multiply(0.5).AddScalar(0.5)
}

// ToColor converts a color in [0,1] to bytes with floor(255.9*v). Values
// outside [0,1] are clamped first.
func ToColor(c core.Vec3) Color {
	c = c.Clamp(0.0, 1.0)
	return Color{
		R: uint8(math.Floor(255.9 * c.X)),
		G: uint8(math.Floor(255.9 * c.Y)),
		B: uint8(math.Floor(255.9 * c.Z)),
	}
}
