package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// ImageData holds a decoded image as linear intensity values in [0, 1].
type ImageData struct {
	Width  int
	Height int
	Pixels []mgl32.Vec3 // row-major
}

// LoadImage loads a PNG or JPEG file and converts it to intensity values.
func LoadImage(path string) (*ImageData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pixels := make([]mgl32.Vec3, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, mgl32.Vec3{
				float32(r) / 65535.0,
				float32(g) / 65535.0,
				float32(b) / 65535.0,
			})
		}
	}

	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}
