package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/output"
	"github.com/df07/stray/pkg/renderer"
)

func TestParseFlags_SceneDefaults(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		expectedScene string
	}{
		{"render default", nil, "open-box"},
		{"debug default", []string{"-mode", "debug"}, "single-quad"},
		{"explicit scene", []string{"-scene", "box-instances"}, "box-instances"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if opts.sceneName != tt.expectedScene {
				t.Errorf("Expected scene %q, got %q", tt.expectedScene, opts.sceneName)
			}
		})
	}
}

func TestSetupRender(t *testing.T) {
	tests := []struct {
		name        string
		opts        options
		expectError bool
	}{
		{"open box", options{sceneName: "open-box"}, false},
		{"single quad custom size", options{sceneName: "single-quad", width: 32, height: 16}, false},
		{"unknown scene", options{sceneName: "nonexistent"}, true},
		{"negative width", options{sceneName: "open-box", width: -4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := setupRender(tt.opts, core.NopLogger{})
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got none")
				}
				if rt != nil {
					t.Errorf("Expected nil raytracer on error, got %T", rt)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if rt == nil {
				t.Fatal("Expected raytracer, got nil")
			}
		})
	}
}

func TestRun_RenderToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-width", "16", "-height", "9", "-output", "-"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3+16*9 {
		t.Fatalf("Expected %d lines, got %d", 3+16*9, len(lines))
	}
	if lines[0] != "P3" || lines[1] != "16 9" || lines[2] != "255" {
		t.Errorf("Unexpected header %q", lines[:3])
	}
	if !strings.Contains(stderr.String(), "Hit ") {
		t.Errorf("Expected hit summary on stderr, got %q", stderr.String())
	}
}

func TestRun_RenderParallelMatchesSequential(t *testing.T) {
	var sequential, parallel bytes.Buffer
	args := []string{"-width", "40", "-height", "24", "-output", "-"}
	if code := run(append(args, "-workers", "1"), &sequential, &bytes.Buffer{}); code != 0 {
		t.Fatalf("Sequential run exited with %d", code)
	}
	if code := run(append(args, "-workers", "4"), &parallel, &bytes.Buffer{}); code != 0 {
		t.Fatalf("Parallel run exited with %d", code)
	}
	if sequential.String() != parallel.String() {
		t.Error("Expected parallel output to match sequential output")
	}
}

func TestRun_RenderToFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
	}{
		{"ppm", "Normals.ppm"},
		{"png", "Normals.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			var stdout, stderr bytes.Buffer
			if code := run([]string{"-width", "8", "-height", "6", "-output", path}, &stdout, &stderr); code != 0 {
				t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("Expected nothing on stdout, got %q", stdout.String())
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if tt.name == "png" {
				if _, err := png.Decode(bytes.NewReader(data)); err != nil {
					t.Errorf("Expected valid PNG: %v", err)
				}
			} else if !strings.HasPrefix(string(data), "P3\n8 6\n255\n") {
				t.Errorf("Unexpected PPM header %q", string(data[:min(len(data), 16)]))
			}
		})
	}
}

func TestRun_SetupFailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-scene", "nonexistent", "-output", path}, &stdout, &stderr)
	if code == 0 {
		t.Fatal("Expected nonzero exit for unknown scene")
	}
	if !strings.Contains(stderr.String(), "unknown scene") {
		t.Errorf("Expected error message on stderr, got %q", stderr.String())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no output file, stat returned %v", err)
	}
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Normals.gif")

	if err := writeFile(path, renderer.NewFramebuffer(2, 2), output.Format("gif")); err == nil {
		t.Fatal("Expected error for unknown format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected failed output to be removed, stat returned %v", err)
	}
}

func TestRun_Debug(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name:        "single quad hit",
			args:        []string{"-mode", "debug"},
			contains:    []string{"Ray hit primitive 0", "geomID: 0", "Ng:"},
			notContains: []string{"instID"},
		},
		{
			name:     "instanced hit",
			args:     []string{"-mode", "debug", "-scene", "box-instances"},
			contains: []string{"instID: 1", "primID: 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 0 {
				t.Fatalf("Expected exit 0, got %d: %s", code, stderr.String())
			}
			for _, s := range tt.contains {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("Expected report to contain %q, got:\n%s", s, stdout.String())
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(stdout.String(), s) {
					t.Errorf("Expected report not to contain %q, got:\n%s", s, stdout.String())
				}
			}
		})
	}
}

func TestRun_BadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown mode", []string{"-mode", "bake"}, 1},
		{"unknown flag", []string{"-samples", "4"}, 2},
		{"stray argument", []string{"scene.pbrt"}, 2},
		{"negative workers", []string{"-workers", "-2"}, 2},
		{"help", []string{"-help"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{}); code != tt.code {
				t.Errorf("Expected exit %d, got %d", tt.code, code)
			}
		})
	}
}
