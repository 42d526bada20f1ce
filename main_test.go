package main

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/halide-rt/halide/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"showcase scene", "showcase", false},
		{"single-sphere scene", "single-sphere", false},
		{"sphere-grid scene", "sphere-grid", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.sceneType)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for scene type '%s', got %v", tt.sceneType, err)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, sc)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if len(sc.Spheres) == 0 {
				t.Errorf("Scene '%s' should have at least one sphere", tt.sceneType)
			}
			if err := sc.Validate(); err != nil {
				t.Errorf("Scene '%s' is invalid: %v", tt.sceneType, err)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	config, _, help, err := parseFlags([]string{
		"-scene", "showcase", "-width", "64", "-height", "32",
		"-frames", "3", "-bounces", "4", "-accumulate=false", "-workers", "2",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if help {
		t.Error("Help should not be requested")
	}
	if config.Scene != "showcase" || config.Width != 64 || config.Height != 32 || config.Frames != 3 {
		t.Errorf("Unexpected config %+v", config)
	}
	if config.Settings.MaxBounces != 4 || config.Settings.Accumulate || config.Settings.NumWorkers != 2 {
		t.Errorf("Unexpected settings %+v", config.Settings)
	}

	defaults, _, _, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if defaults.Settings.NumWorkers < 1 {
		t.Errorf("Default worker count should be positive, got %d", defaults.Settings.NumWorkers)
	}
	if defaults.Settings.TileSize <= 0 {
		t.Errorf("Default tile size should be positive, got %d", defaults.Settings.TileSize)
	}
}

func TestRunWritesPNG(t *testing.T) {
	config, _, _, err := parseFlags([]string{
		"-scene", "single-sphere", "-width", "16", "-height", "12",
		"-frames", "2", "-workers", "2", "-output", t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	filename, err := run(context.Background(), config)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(filename, filepath.Join(config.OutputDir, "single-sphere")) {
		t.Errorf("Expected output under the scene directory, got %s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Opening output: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Expected 16x12 image, got %v", b)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "cornell"}},
		{"unknown sky", []string{"-sky", "plaid"}},
		{"zero width", []string{"-width", "0"}},
		{"zero frames", []string{"-frames", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, _, _, err := parseFlags(append(tt.args, "-output", t.TempDir()))
			if err != nil {
				t.Fatalf("Unexpected flag error: %v", err)
			}
			if _, err := run(context.Background(), config); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
