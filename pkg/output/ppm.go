package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/stray/pkg/renderer"
)

// WritePPM writes fb as a plain-text (P3) portable pixel map, one "r g b"
// line per pixel, top row first
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("writing PPM header: %w", err)
	}
	for _, p := range fb.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return fmt.Errorf("writing PPM pixels: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing PPM: %w", err)
	}
	return nil
}
