package renderer

import (
	"image"
	"math/rand"
)

// Tile represents a rectangular region of the image for rendering.
// Each tile carries its own random source so sample jitter depends only on
// the tile, not on which worker renders it.
type Tile struct {
	ID     int
	Bounds image.Rectangle
	Random *rand.Rand
}

// NewTile creates a tile with a deterministic per-tile random source.
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewTileGrid divides an image into square tiles in row-major order.
// Edge tiles are clipped to the image bounds.
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			id := tileY*tilesX + tileX
			tiles = append(tiles, NewTile(id, image.Rect(x0, y0, x1, y1), seed))
		}
	}
	return tiles
}
