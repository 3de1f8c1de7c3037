// Package texture provides decoded texture images and a concurrency-safe
// store that caches them by file path.
package texture

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/loaders"
)

// Texture is a decoded image held as linear RGB intensity values.
type Texture struct {
	Width  int
	Height int
	Pixels []mgl32.Vec3 // row-major
}

// FromImage wraps decoded image data as a texture.
func FromImage(img *loaders.ImageData) *Texture {
	return &Texture{Width: img.Width, Height: img.Height, Pixels: img.Pixels}
}

// At returns the texel at the given column and row.
func (t *Texture) At(col, row int) mgl32.Vec3 {
	return t.Pixels[row*t.Width+col]
}

// Sample looks up the texel under a UV coordinate, tiling the image repeatU
// times horizontally and repeatV times vertically. Coordinates outside [0, 1)
// wrap around, so u = 1.25 samples the same texel as u = 0.25.
func (t *Texture) Sample(u, v, repeatU, repeatV float32) mgl32.Vec3 {
	col := int(math32.Floor(u*float32(t.Width)*repeatU)) % t.Width
	row := int(math32.Floor((1-v)*float32(t.Height)*repeatV)) % t.Height
	if col < 0 {
		col += t.Width
	}
	if row < 0 {
		row += t.Height
	}
	return t.At(col, row)
}
