package renderer

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/scene"
)

// TileProgress describes a completed tile during a render. Framebuffer is
// the image under construction; the completed tile's bounds are final, other
// regions may still be unrendered.
type TileProgress struct {
	Tile        *Tile
	Framebuffer *Framebuffer
	TilesDone   int
	TotalTiles  int
	Elapsed     time.Duration
}

// Renderer drives a full-image render: it splits the image into tiles,
// traces every pixel and assembles the framebuffer.
type Renderer struct {
	scene     *scene.Scene
	config    Config
	camera    *Camera
	raytracer *Raytracer
	stats     *RayStats
	logger    Logger
}

// NewRenderer creates a renderer for a scene. A nil logger falls back to
// stdout logging.
func NewRenderer(s *scene.Scene, config Config, logger Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	camera, err := NewCamera(s.Camera, config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	stats := &RayStats{}
	return &Renderer{
		scene:     s,
		config:    config,
		camera:    camera,
		raytracer: NewRaytracer(s, config, stats),
		stats:     stats,
		logger:    logger,
	}, nil
}

// Stats returns the ray counters accumulated by this renderer.
func (r *Renderer) Stats() *RayStats {
	return r.stats
}

// Render renders the whole image and returns the framebuffer.
func (r *Renderer) Render() *Framebuffer {
	return r.RenderWithProgress(nil)
}

// RenderWithProgress renders the whole image, invoking onTile after each
// finished tile. The callback always runs on the calling goroutine.
func (r *Renderer) RenderWithProgress(onTile func(TileProgress)) *Framebuffer {
	start := time.Now()
	fb := NewFramebuffer(r.config.Width, r.config.Height)
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize, r.config.Seed)

	workers := r.config.Workers()
	if !r.config.EnableParallelism {
		workers = 1
	}
	r.logger.Printf("Rendering %dx%d at %d samples/pixel (%d tiles, %d workers)\n",
		r.config.Width, r.config.Height, r.config.Samples, len(tiles), workers)

	done := 0
	report := func(tile *Tile) {
		done++
		if onTile != nil {
			onTile(TileProgress{
				Tile:        tile,
				Framebuffer: fb,
				TilesDone:   done,
				TotalTiles:  len(tiles),
				Elapsed:     time.Since(start),
			})
		}
	}

	if workers == 1 {
		for _, tile := range tiles {
			r.renderTile(tile, fb)
			report(tile)
		}
	} else {
		pool := NewWorkerPool(workers, len(tiles), func(tile *Tile) {
			r.renderTile(tile, fb)
		})
		pool.Start()
		for _, tile := range tiles {
			pool.SubmitTask(tile)
		}
		for i := 0; i < len(tiles); i++ {
			result, ok := pool.GetResult()
			if !ok {
				break
			}
			report(result.Tile)
		}
		pool.Stop()
	}

	r.logger.Printf("Render complete in %v: %v\n",
		time.Since(start).Round(time.Millisecond), r.stats)
	return fb
}

// renderTile traces every pixel inside the tile bounds. Tiles never overlap,
// so writing into the shared framebuffer needs no locking.
func (r *Renderer) renderTile(tile *Tile, fb *Framebuffer) {
	for py := tile.Bounds.Min.Y; py < tile.Bounds.Max.Y; py++ {
		for px := tile.Bounds.Min.X; px < tile.Bounds.Max.X; px++ {
			fb.Set(px, py, r.renderPixel(px, py, tile))
		}
	}
}

// renderPixel traces the samples for one pixel and averages them. A single
// sample goes through the exact pixel center so flat scenes stay noise free.
func (r *Renderer) renderPixel(px, py int, tile *Tile) mgl32.Vec3 {
	if r.config.Samples <= 1 {
		r.stats.Primary.Add(1)
		return r.raytracer.TraceRay(r.camera.GetRay(px, py, 0.5, 0.5), 0)
	}

	var sum mgl32.Vec3
	for s := 0; s < r.config.Samples; s++ {
		jx := tile.Random.Float32()
		jy := tile.Random.Float32()
		r.stats.Primary.Add(1)
		sum = sum.Add(r.raytracer.TraceRay(r.camera.GetRay(px, py, jx, jy), 0))
	}
	return sum.Mul(1 / float32(r.config.Samples))
}
