package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/output"
	"github.com/df07/stray/pkg/renderer"
	"github.com/df07/stray/pkg/scene"
)

// options holds the parsed command line
type options struct {
	mode       string
	sceneName  string
	width      int
	height     int
	output     string
	workers    int
	rawNormals bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the program and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := log.New(stderr, "", log.LstdFlags)

	switch opts.mode {
	case "render":
		err = runRender(opts, stdout, logger)
	case "debug":
		err = runDebug(opts, stdout)
	default:
		err = fmt.Errorf("unknown mode %q (expected render or debug)", opts.mode)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("stray", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.mode, "mode", "render", "Mode: 'render' for a normal image or 'debug' for a single ray report")
	fs.StringVar(&opts.sceneName, "scene", "", "Scene name (default open-box for render, single-quad for debug)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (default from scene)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (default from scene)")
	fs.StringVar(&opts.output, "output", "Normals.ppm", "Output file (.ppm or .png), or '-' for stdout")
	fs.IntVar(&opts.workers, "workers", 1, "Number of render workers (0 = use CPU count)")
	fs.BoolVar(&opts.rawNormals, "raw-normals", false, "Shade with unnormalized geometric normals")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Stray normal visualizer")
		fmt.Fprintln(stderr, "Usage: stray [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Available scenes:")
		for _, name := range scene.PresetNames() {
			p, _ := scene.LookupPreset(name)
			fmt.Fprintf(stderr, "  %-14s %s\n", name, p.Description)
		}
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.workers < 0 {
		return options{}, fmt.Errorf("invalid -workers %d (must be 0 or more)", opts.workers)
	}

	if opts.sceneName == "" {
		opts.sceneName = "open-box"
		if opts.mode == "debug" {
			opts.sceneName = "single-quad"
		}
	}
	return opts, nil
}

// setupRender builds the scene, camera and raytracer. Nothing is written
// until it succeeds.
func setupRender(opts options, logger core.Logger) (*renderer.Raytracer, error) {
	preset, err := scene.LookupPreset(opts.sceneName)
	if err != nil {
		return nil, err
	}

	s, err := preset.Build()
	if err != nil {
		return nil, fmt.Errorf("building scene %s: %w", preset.Name, err)
	}
	logger.Printf("Scene %s committed with %d primitives\n", preset.Name, s.PrimitiveCount())

	width, height := preset.Width, preset.Height
	if opts.width != 0 {
		width = opts.width
	}
	if opts.height != 0 {
		height = opts.height
	}

	frame, err := renderer.NewCameraFrame(renderer.CameraConfig{
		Origin:    preset.CameraOrigin,
		Direction: preset.CameraDirection,
		WorldUp:   core.NewVec3(0, 1, 0),
		Width:     width,
		Height:    height,
	})
	if err != nil {
		return nil, fmt.Errorf("building camera: %w", err)
	}

	shading := renderer.ShadingConfig{RawNormals: opts.rawNormals}
	return renderer.NewRaytracer(s, frame, shading, logger), nil
}

func runRender(opts options, stdout io.Writer, logger core.Logger) error {
	rt, err := setupRender(opts, logger)
	if err != nil {
		return err
	}

	var fb *renderer.Framebuffer
	var stats renderer.RenderStats
	if opts.workers == 1 {
		fb, stats = rt.Render()
	} else {
		fb, stats = rt.RenderParallel(opts.workers)
	}
	logger.Printf("Hit %d of %d pixels (%.1f%%)\n", stats.HitPixels, stats.TotalPixels, 100*stats.HitRatio())

	format := output.FormatFromPath(opts.output)
	if opts.output == "-" {
		return output.Write(stdout, fb, format)
	}
	if err := writeFile(opts.output, fb, format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", opts.output)
	return nil
}

func writeFile(path string, fb *renderer.Framebuffer, format output.Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := output.Write(file, fb, format); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

func runDebug(opts options, stdout io.Writer) error {
	preset, err := scene.LookupPreset(opts.sceneName)
	if err != nil {
		return err
	}
	s, err := preset.Build()
	if err != nil {
		return fmt.Errorf("building scene %s: %w", preset.Name, err)
	}

	hit := renderer.TraceDebugRay(s, renderer.DebugRay{
		Origin:    preset.DebugOrigin,
		Direction: preset.DebugDirection,
	})
	return renderer.WriteHitReport(stdout, hit)
}
