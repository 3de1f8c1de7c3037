package renderer

import (
	"fmt"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
)

// Config controls the output size, shading features and parallelism of a render.
type Config struct {
	Width  int // output image width in pixels
	Height int // output image height in pixels

	Samples           int // rays per pixel, 1 disables jittering
	MaxRecursionDepth int // number of reflection bounces

	EnableShadows     bool
	EnableReflections bool
	EnableTexture     bool
	EnableParallelism bool

	NumWorkers int   // 0 uses runtime.NumCPU()
	TileSize   int   // square tile edge in pixels
	Seed       int64 // base seed for per-tile sampling

	Background mgl32.Vec3 // color returned by rays that miss every shape
}

// DefaultConfig returns a config with all shading features enabled.
func DefaultConfig() Config {
	return Config{
		Width:             512,
		Height:            384,
		Samples:           1,
		MaxRecursionDepth: 4,
		EnableShadows:     true,
		EnableReflections: true,
		EnableTexture:     true,
		EnableParallelism: true,
		NumWorkers:        0,
		TileSize:          32,
		Seed:              42,
	}
}

// Validate checks that the config describes a renderable image.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Samples < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", c.Samples)
	}
	if c.MaxRecursionDepth < 0 {
		return fmt.Errorf("max recursion depth must be non-negative, got %d", c.MaxRecursionDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("worker count must be non-negative, got %d", c.NumWorkers)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	return nil
}

// Workers returns the effective worker count, defaulting to the CPU count.
func (c Config) Workers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	return runtime.NumCPU()
}
