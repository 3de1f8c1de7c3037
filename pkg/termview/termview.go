// Package termview displays renders inside the terminal using half-block
// cells, doubling the vertical pixel resolution.
package termview

import (
	"context"
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-scene-raytracer/pkg/renderer"
	"github.com/df07/go-scene-raytracer/pkg/scene"
)

// TerminalRenderer draws framebuffers onto a terminal screen. Each cell shows
// two vertically stacked pixels through ▀, with the top pixel as the cell
// foreground and the bottom pixel as the background.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalRenderer creates a renderer for the given terminal size.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions filling the terminal.
// The framebuffer height is 2x the terminal height.
func (r *TerminalRenderer) FramebufferSize() (int, int) {
	return r.width, r.height * 2
}

// Render writes the whole framebuffer into the terminal's cell buffer.
func (r *TerminalRenderer) Render(fb *renderer.Framebuffer) {
	r.RenderRegion(fb, image.Rect(0, 0, fb.Width, fb.Height))
}

// RenderRegion writes the cells covering the given pixel bounds. A cell
// straddling the region edge rereads its neighbor pixel from the
// framebuffer, so repainting tile by tile converges on the full image.
func (r *TerminalRenderer) RenderRegion(fb *renderer.Framebuffer, bounds image.Rectangle) {
	rowEnd := (bounds.Max.Y + 1) / 2
	for row := bounds.Min.Y / 2; row < rowEnd && row < r.height; row++ {
		topY := row * 2
		botY := topY + 1

		for col := bounds.Min.X; col < bounds.Max.X && col < r.width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: pixelColor(fb, col, topY),
					Bg: pixelColor(fb, col, botY),
				},
			}
			r.term.SetCell(col, row, cell)
		}
	}
}

// Flush presents the cell buffer on screen.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}

// pixelColor converts a framebuffer pixel to a terminal color.
func pixelColor(fb *renderer.Framebuffer, x, y int) color.Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{A: 255}
	}
	c := fb.At(x, y)
	return color.RGBA{
		R: uint8(255 * mgl32.Clamp(c.X(), 0, 1)),
		G: uint8(255 * mgl32.Clamp(c.Y(), 0, 1)),
		B: uint8(255 * mgl32.Clamp(c.Z(), 0, 1)),
		A: 255,
	}
}

// quietLogger suppresses render progress output while the alt screen is up.
type quietLogger struct{}

func (quietLogger) Printf(string, ...interface{}) {}

// Show renders the scene sized to the terminal, painting each tile as it
// completes, and keeps the finished image on screen until the user quits
// with q, escape or ctrl+c. Resizing the window rerenders at the new size.
func Show(ctx context.Context, s *scene.Scene, cfg renderer.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	view := NewTerminalRenderer(term, width, height)
	if err := display(view, s, cfg); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				view = NewTerminalRenderer(term, width, height)
				if err := display(view, s, cfg); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				if ev.MatchString("q", "escape", "ctrl+c") {
					return nil
				}
			}
		}
	}
}

// display renders the scene at the view's pixel size, flushing after every
// completed tile so the image builds up on screen.
func display(view *TerminalRenderer, s *scene.Scene, cfg renderer.Config) error {
	cfg.Width, cfg.Height = view.FramebufferSize()

	r, err := renderer.NewRenderer(s, cfg, quietLogger{})
	if err != nil {
		return err
	}

	var flushErr error
	r.RenderWithProgress(func(p renderer.TileProgress) {
		view.RenderRegion(p.Framebuffer, p.Tile.Bounds)
		if err := view.Flush(); err != nil && flushErr == nil {
			flushErr = err
		}
	})
	return flushErr
}
