package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/halide-rt/halide/pkg/geometry"
	"github.com/halide-rt/halide/pkg/integrator"
	"github.com/halide-rt/halide/pkg/renderer"
	"github.com/halide-rt/halide/pkg/scene"
	"github.com/halide-rt/halide/pkg/sysinfo"
)

// Config holds the parsed command line
type Config struct {
	Scene     string
	Width     int
	Height    int
	Frames    int
	OutputDir string
	Sky       string
	Settings  renderer.Settings
}

func main() {
	config, fs, help, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if help {
		printHelp(fs)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (Config, *flag.FlagSet, bool, error) {
	defaults := renderer.DefaultSettings()
	fs := flag.NewFlagSet("halide", flag.ContinueOnError)

	config := Config{}
	fs.StringVar(&config.Scene, "scene", "default", "Scene name: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&config.Width, "width", 400, "Image width in pixels")
	fs.IntVar(&config.Height, "height", 225, "Image height in pixels")
	fs.IntVar(&config.Frames, "frames", 64, "Number of frames to render")
	fs.IntVar(&config.Settings.MaxBounces, "bounces", defaults.MaxBounces, "Maximum bounces per path")
	fs.BoolVar(&config.Settings.Accumulate, "accumulate", defaults.Accumulate, "Average frames progressively")
	fs.BoolVar(&config.Settings.GammaCorrect, "gamma", defaults.GammaCorrect, "Apply gamma 2 tone mapping")
	fs.BoolVar(&config.Settings.DirectLighting, "direct", defaults.DirectLighting, "Add the fixed-direction light term")
	fs.StringVar(&config.Sky, "sky", "gradient", "Sky: 'gradient', 'flat' or a color name such as 'skyblue'")
	fs.IntVar(&config.Settings.NumWorkers, "workers", 0, "Number of parallel workers (0 = logical cores)")
	fs.StringVar(&config.OutputDir, "output", "output", "Directory for rendered images")
	help := fs.Bool("help", false, "Show help information")
	if err := fs.Parse(args); err != nil {
		return config, fs, false, err
	}

	config.Settings.TileSize = defaults.TileSize
	if config.Settings.NumWorkers <= 0 {
		config.Settings.NumWorkers = sysinfo.DefaultWorkers()
	}
	return config, fs, *help, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Halide Progressive Path Tracer")
	fmt.Println("Usage: halide [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, group := range scene.ListScenes().Groups {
		for _, info := range group.Scenes {
			fmt.Printf("  %-14s - %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

// run renders the configured scene and returns the path of the saved image
func run(ctx context.Context, config Config) (string, error) {
	fmt.Println("Starting Halide...")
	if info, err := sysinfo.Collect(); err != nil {
		fmt.Printf("Host info unavailable: %v\n", err)
	} else {
		fmt.Printf("Host: %s\n", info)
	}

	sc, err := createScene(config.Scene)
	if err != nil {
		return "", err
	}
	if config.Settings.Sky, err = integrator.ResolveSky(sc, config.Sky); err != nil {
		return "", err
	}
	if config.Width <= 0 || config.Height <= 0 {
		return "", fmt.Errorf("image size must be positive, got %dx%d", config.Width, config.Height)
	}
	if config.Frames <= 0 {
		return "", fmt.Errorf("frames must be positive, got %d", config.Frames)
	}

	img, err := renderScene(ctx, sc, config)
	if err != nil {
		return "", err
	}

	// Create output directory for this scene
	outputDir := filepath.Join(config.OutputDir, config.Scene)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := savePNG(filename, img); err != nil {
		return "", err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return filename, nil
}

// createScene looks up a registered scene by name
func createScene(name string) (*scene.Scene, error) {
	sc, err := scene.Create(name)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(scene.Names(), ", "))
	}
	return sc, nil
}

// renderScene runs the progressive renderer and returns the last frame
func renderScene(ctx context.Context, sc *scene.Scene, config Config) (*image.RGBA, error) {
	r := renderer.NewRenderer(config.Settings, renderer.NewDefaultLogger())
	defer r.Close()
	r.OnResize(config.Width, config.Height)

	camera := geometry.NewCamera(sc.CameraConfig)
	camera.Resize(config.Width, config.Height)

	fmt.Printf("Rendering %q at %dx%d, %d frames, %d workers\n",
		config.Scene, config.Width, config.Height, config.Frames, config.Settings.NumWorkers)

	startTime := time.Now()
	frames, errs := r.RenderProgressive(ctx, sc, camera, renderer.ProgressiveOptions{Frames: config.Frames})

	var last *image.RGBA
	for result := range frames {
		last = result.Image
	}
	if err := <-errs; err != nil {
		// An interrupt keeps whatever converged so far
		if last == nil || ctx.Err() == nil {
			return nil, err
		}
		fmt.Printf("Interrupted, saving partial result: %v\n", err)
	}

	fmt.Printf("Render completed in %v (average luminance %.3f)\n",
		time.Since(startTime), renderer.CalculateAverageLuminance(last))
	return last, nil
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}
