package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose ray hit the scene
	Workers     int           // Number of workers used (1 for sequential)
	Duration    time.Duration // Wall time of the render
}

// MissPixels returns the number of pixels whose ray missed the scene
func (s RenderStats) MissPixels() int {
	return s.TotalPixels - s.HitPixels
}

// HitRatio returns the fraction of pixels that hit the scene
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
