package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Framebuffer stores rendered pixel colors in linear RGB, row-major order.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []mgl32.Vec3
}

// NewFramebuffer creates a zeroed framebuffer of the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]mgl32.Vec3, width*height),
	}
}

// Set stores the color for pixel (x, y).
func (fb *Framebuffer) Set(x, y int, c mgl32.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the color of pixel (x, y).
func (fb *Framebuffer) At(x, y int) mgl32.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// channelToByte clamps a color channel to [0, 1] and quantizes it to 8 bits.
func channelToByte(v float32) uint8 {
	return uint8(255 * mgl32.Clamp(v, 0, 1))
}

// ToRGBA converts the framebuffer to an 8-bit RGBA image with full alpha.
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: channelToByte(c.X()),
				G: channelToByte(c.Y()),
				B: channelToByte(c.Z()),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes the framebuffer as PNG to w.
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, fb.ToRGBA())
}

// SavePNG writes the framebuffer to a PNG file at the given path.
func (fb *Framebuffer) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := fb.WritePNG(file); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
