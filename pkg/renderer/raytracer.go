package renderer

import (
	"runtime"
	"time"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/geometry"
)

// Intersector is the ray query service the raytracer renders against
type Intersector interface {
	Intersect(ray core.Ray, ctx *geometry.IntersectContext) core.HitResult
}

// Raytracer casts one ray per pixel and shades the answer
type Raytracer struct {
	scene   Intersector
	camera  *CameraFrame
	shading ShadingConfig
	logger  core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene Intersector, camera *CameraFrame, shading ShadingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:   scene,
		camera:  camera,
		shading: shading,
		logger:  logger,
	}
}

// Render renders the image on the calling goroutine, one query at a time
func (rt *Raytracer) Render() (*Framebuffer, RenderStats) {
	start := time.Now()
	fb := NewFramebuffer(rt.camera.Width, rt.camera.Height)
	ctx := geometry.NewIntersectContext()

	stats := RenderStats{TotalPixels: fb.Width * fb.Height, Workers: 1}
	for y := rt.camera.Height - 1; y >= 0; y-- {
		stats.HitPixels += rt.renderRow(y, ctx, fb)
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Rendered %dx%d in %v (%d hits)\n", fb.Width, fb.Height, stats.Duration, stats.HitPixels)
	return fb, stats
}

// RenderParallel renders rows on numWorkers goroutines (0 = use CPU count).
// The result is identical to Render.
func (rt *Raytracer) RenderParallel(numWorkers int) (*Framebuffer, RenderStats) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers == 1 {
		return rt.Render()
	}

	start := time.Now()
	fb := NewFramebuffer(rt.camera.Width, rt.camera.Height)
	pool := NewWorkerPool(rt, fb, numWorkers)
	pool.Start()

	for y := rt.camera.Height - 1; y >= 0; y-- {
		pool.SubmitTask(RowTask{Y: y})
	}
	pool.Stop()

	stats := RenderStats{TotalPixels: fb.Width * fb.Height, Workers: pool.GetNumWorkers()}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.HitPixels += result.Hits
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Rendered %dx%d in %v on %d workers (%d hits)\n",
		fb.Width, fb.Height, stats.Duration, stats.Workers, stats.HitPixels)
	return fb, stats
}

// renderRow shades every pixel of camera row y and returns the number of hits
func (rt *Raytracer) renderRow(y int, ctx *geometry.IntersectContext, fb *Framebuffer) int {
	hits := 0
	for x := 0; x < rt.camera.Width; x++ {
		hit := rt.scene.Intersect(rt.camera.GetRay(x, y), ctx)
		if hit.IsHit() {
			hits++
		}
		fb.SetCamera(x, y, ToColor(ShadeNormal(hit, rt.shading)))
	}
	return hits
}
