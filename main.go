package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-scene-raytracer/pkg/animation"
	"github.com/df07/go-scene-raytracer/pkg/renderer"
	"github.com/df07/go-scene-raytracer/pkg/scene"
	"github.com/df07/go-scene-raytracer/pkg/termview"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCommand()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "scenetracer",
		Short: "A recursive raytracer for XML scenefiles",
		Long: "scenetracer renders XML scenefiles with recursive Phong illumination:\n" +
			"point, directional and spot lights, shadows, mirror reflections,\n" +
			"textured primitives and glTF meshes.",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCommand(), newTurntableCommand())
	return root
}

// renderFlags binds the scene and render options shared by every command.
type renderFlags struct {
	scenePath string
	assetDir  string

	width    int
	height   int
	samples  int
	maxDepth int
	workers  int
	tileSize int
	seed     int64

	enableShadows     bool
	enableReflections bool
	enableTexture     bool
	enableParallelism bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	defaults := renderer.DefaultConfig()

	flags := cmd.Flags()
	flags.StringVarP(&f.scenePath, "scene", "s", "", "path to the XML scenefile")
	flags.StringVar(&f.assetDir, "textures", "", "directory textures and meshes resolve against (defaults to the scenefile directory)")
	flags.IntVar(&f.width, "width", defaults.Width, "output image width in pixels")
	flags.IntVar(&f.height, "height", defaults.Height, "output image height in pixels")
	flags.IntVar(&f.samples, "samples", defaults.Samples, "rays per pixel, more than 1 enables jittered anti-aliasing")
	flags.IntVar(&f.maxDepth, "max-depth", defaults.MaxRecursionDepth, "maximum reflection bounces")
	flags.BoolVar(&f.enableShadows, "enable-shadows", defaults.EnableShadows, "trace shadow rays toward lights")
	flags.BoolVar(&f.enableReflections, "enable-reflections", defaults.EnableReflections, "trace recursive reflection rays")
	flags.BoolVar(&f.enableTexture, "enable-texture", defaults.EnableTexture, "sample material textures")
	flags.BoolVar(&f.enableParallelism, "enable-parallelism", defaults.EnableParallelism, "render tiles on multiple workers")
	flags.IntVar(&f.workers, "workers", defaults.NumWorkers, "worker count, 0 uses all CPUs")
	flags.IntVar(&f.tileSize, "tile-size", defaults.TileSize, "tile edge length in pixels")
	flags.Int64Var(&f.seed, "seed", defaults.Seed, "base seed for sample jitter")
	cmd.MarkFlagRequired("scene")
}

func (f *renderFlags) config() renderer.Config {
	cfg := renderer.DefaultConfig()
	cfg.Width = f.width
	cfg.Height = f.height
	cfg.Samples = f.samples
	cfg.MaxRecursionDepth = f.maxDepth
	cfg.EnableShadows = f.enableShadows
	cfg.EnableReflections = f.enableReflections
	cfg.EnableTexture = f.enableTexture
	cfg.EnableParallelism = f.enableParallelism
	cfg.NumWorkers = f.workers
	cfg.TileSize = f.tileSize
	cfg.Seed = f.seed
	return cfg
}

// loadScene parses and builds the scene, printing any parser warnings.
func (f *renderFlags) loadScene(logger renderer.Logger) (*scene.Scene, error) {
	assetDir := f.assetDir
	if assetDir == "" {
		assetDir = filepath.Dir(f.scenePath)
	}

	s, err := scene.NewFromFile(f.scenePath, assetDir)
	if err != nil {
		return nil, err
	}
	for _, warning := range s.Warnings {
		logger.Printf("Warning: %s\n", warning)
	}
	return s, nil
}

func newRenderCommand() *cobra.Command {
	var f renderFlags
	var output string
	var preview bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scenefile to a PNG image",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := renderer.NewDefaultLogger()
			s, err := f.loadScene(logger)
			if err != nil {
				return err
			}
			cfg := f.config()

			if preview {
				return termview.Show(cmd.Context(), s, cfg)
			}

			r, err := renderer.NewRenderer(s, cfg, logger)
			if err != nil {
				return err
			}

			start := time.Now()
			fb := r.Render()
			if err := fb.SavePNG(output); err != nil {
				return err
			}

			fmt.Println(renderSummary(output, cfg, r.Stats(), time.Since(start)))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "render.png", "output PNG path")
	cmd.Flags().BoolVar(&preview, "preview", false, "show the render in the terminal instead of writing a file")
	return cmd
}

func newTurntableCommand() *cobra.Command {
	var f renderFlags
	var output string
	opts := animation.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "turntable",
		Short: "Render an orbiting camera animation to a GIF",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := renderer.NewDefaultLogger()
			s, err := f.loadScene(logger)
			if err != nil {
				return err
			}

			start := time.Now()
			anim, err := animation.RenderTurntable(cmd.Context(), s, f.config(), opts, logger)
			if err != nil {
				return err
			}
			if err := animation.SaveGIF(output, anim); err != nil {
				return err
			}

			logger.Printf("Saved %d frames to %s in %v\n",
				len(anim.Image), output, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "turntable.gif", "output GIF path")
	cmd.Flags().IntVar(&opts.Frames, "frames", opts.Frames, "frames in one full orbit")
	cmd.Flags().IntVar(&opts.FPS, "fps", opts.FPS, "animation playback rate")
	cmd.Flags().Float32Var(&opts.Zoom, "zoom", opts.Zoom, "dolly factor the camera settles toward")
	return cmd
}

var (
	summaryTitle = lipgloss.NewStyle().Bold(true)
	summaryLabel = lipgloss.NewStyle().Faint(true)
)

// renderSummary formats the post-render report block.
func renderSummary(output string, cfg renderer.Config, stats *renderer.RayStats, elapsed time.Duration) string {
	rows := []string{
		summaryTitle.Render("Render complete"),
		fmt.Sprintf("%s %s", summaryLabel.Render("output:"), output),
		fmt.Sprintf("%s %dx%d, %d samples/pixel", summaryLabel.Render("image:"), cfg.Width, cfg.Height, cfg.Samples),
		fmt.Sprintf("%s %v", summaryLabel.Render("time:"), elapsed.Round(time.Millisecond)),
		fmt.Sprintf("%s %v", summaryLabel.Render("rays:"), stats),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
