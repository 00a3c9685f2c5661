package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/df07/stray/pkg/renderer"
)

// Format selects the image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// FormatFromPath picks PNG for a .png path and PPM for everything else,
// including "-" for stdout
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// ToImage converts fb to an opaque RGBA image
func ToImage(fb *renderer.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for row := 0; row < fb.Height; row++ {
		for col := 0; col < fb.Width; col++ {
			p := fb.At(col, row)
			img.SetRGBA(col, row, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// WritePNG encodes fb as PNG
func WritePNG(w io.Writer, fb *renderer.Framebuffer) error {
	if err := png.Encode(w, ToImage(fb)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// Write encodes fb in the given format
func Write(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	switch format {
	case FormatPNG:
		return WritePNG(w, fb)
	case FormatPPM:
		return WritePPM(w, fb)
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}
