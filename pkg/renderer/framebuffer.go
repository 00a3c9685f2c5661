package renderer

// Framebuffer holds the rendered pixels row-major with the top row first,
// which is the order portable pixel maps are written in
type Framebuffer struct {
	Width, Height int
	Pixels        []Color
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// index maps camera pixel coordinates (y=0 at the bottom) to the storage index
func (fb *Framebuffer) index(x, y int) int {
	return (fb.Height-1-y)*fb.Width + x
}

// SetCamera stores the color of camera pixel (x, y), where y=0 is the bottom row
func (fb *Framebuffer) SetCamera(x, y int, c Color) {
	fb.Pixels[fb.index(x, y)] = c
}

// At returns the pixel in image column col and row row, row 0 being the top
func (fb *Framebuffer) At(col, row int) Color {
	return fb.Pixels[row*fb.Width+col]
}
