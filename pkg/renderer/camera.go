package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/stray/pkg/core"
)

var (
	// ErrDegenerateBasis is returned when the camera direction is zero or
	// parallel to the world-up vector, so no right vector exists
	ErrDegenerateBasis = errors.New("degenerate camera basis")
	// ErrInvalidImageSize is returned for non-positive image dimensions
	ErrInvalidImageSize = errors.New("invalid image size")
)

// CameraConfig contains the placement of a fixed-magnification pinhole camera
type CameraConfig struct {
	Origin    core.Vec3 // Camera position
	Direction core.Vec3 // Look direction, need not be normalized
	WorldUp   core.Vec3 // Up reference, defaults to +Y when zero
	Width     int       // Image width in pixels
	Height    int       // Image height in pixels
}

// CameraFrame is the orthonormal camera basis plus the image plane's
// lower-left corner. The image plane sits one unit in front of the origin,
// spans one unit horizontally and Height/Width units vertically.
type CameraFrame struct {
	Origin           core.Vec3
	Forward          core.Vec3
	Right            core.Vec3
	Up               core.Vec3
	ImagePlaneOrigin core.Vec3
	AspectRatio      float64 // Height / Width
	Width, Height    int
}

// NewCameraFrame builds the camera basis for config
func NewCameraFrame(config CameraConfig) (*CameraFrame, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, config.Width, config.Height)
	}

	worldUp := config.WorldUp
	if worldUp == (core.Vec3{}) {
		worldUp = core.NewVec3(0, 1, 0)
	}

	if config.Direction.IsNearZero() {
		return nil, fmt.Errorf("%w: zero look direction", ErrDegenerateBasis)
	}
	forward := config.Direction.Normalize()

	side := forward.Cross(worldUp)
	if side.IsNearZero() {
		return nil, fmt.Errorf("%w: direction %v is parallel to up %v", ErrDegenerateBasis, config.Direction, worldUp)
	}
	right := side.Normalize()
	up := right.Cross(forward)

	aspectRatio := float64(config.Height) / float64(config.Width)
	imagePlaneOrigin := config.Origin.
		Add(forward).
		Subtract(up.Multiply(0.5 * aspectRatio)).
		Subtract(right.Multiply(0.5))

	return &CameraFrame{
		Origin:           config.Origin,
		Forward:          forward,
		Right:            right,
		Up:               up,
		ImagePlaneOrigin: imagePlaneOrigin,
		AspectRatio:      aspectRatio,
		Width:            config.Width,
		Height:           config.Height,
	}, nil
}

// GetRay returns the primary ray for pixel (x, y), where y=0 is the bottom
// row of the image plane
func (c *CameraFrame) GetRay(x, y int) core.Ray {
	sx := float64(x) / float64(c.Width)
	sy := float64(y) / float64(c.Height)

	pointOnPlane := c.ImagePlaneOrigin.
		Add(c.Right.Multiply(sx)).
		Add(c.Up.Multiply(c.AspectRatio * sy))

	return core.NewRay(c.Origin, pointOnPlane.Subtract(c.Origin).Normalize())
}
