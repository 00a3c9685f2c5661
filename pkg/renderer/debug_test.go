package renderer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/df07/stray/pkg/core"
	"github.com/df07/stray/pkg/scene"
)

func TestTraceDebugRay_SingleQuad(t *testing.T) {
	s, err := scene.NewSingleQuadScene()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		direction core.Vec3
		expectHit bool
	}{
		{"towards the quad", core.NewVec3(-0.03, 0.05, -0.94), true},
		{"away from the quad", core.NewVec3(-0.03, 0.05, 0.94), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := TraceDebugRay(s, DebugRay{Origin: core.NewVec3(0.12, 0.03, 0.01), Direction: tt.direction})
			if hit.IsHit() != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, hit.IsHit())
			}
			if !tt.expectHit {
				return
			}
			if hit.U < 0 || hit.U > 1 || hit.V < 0 || hit.V > 1 {
				t.Errorf("Expected u,v in [0,1], got (%f, %f)", hit.U, hit.V)
			}
			if hit.T <= 0 {
				t.Errorf("Expected positive t, got %f", hit.T)
			}
		})
	}
}

func TestWriteHitReport(t *testing.T) {
	direct := core.HitResult{
		GeomID: 0, PrimID: 2, InstID: core.InvalidGeometryID,
		Ng: core.NewVec3(0, 0, 1), U: 0.25, V: 0.5, T: 1.5,
	}
	instanced := direct
	instanced.InstID = 1

	tests := []struct {
		name        string
		hit         core.HitResult
		contains    []string
		notContains []string
	}{
		{
			name:        "miss",
			hit:         core.NewMissResult(),
			contains:    []string{"missed"},
			notContains: []string{"u:", "geomID"},
		},
		{
			name:        "direct hit",
			hit:         direct,
			contains:    []string{"Ray hit primitive 2", "u:      0.25", "v:      0.5", "geomID: 0", "primID: 2", "Ng:     (0, 0, 1)", "t:      1.5"},
			notContains: []string{"instID"},
		},
		{
			name:     "instanced hit",
			hit:      instanced,
			contains: []string{"instID: 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteHitReport(&buf, tt.hit); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			report := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(report, s) {
					t.Errorf("Expected report to contain %q, got:\n%s", s, report)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(report, s) {
					t.Errorf("Expected report not to contain %q, got:\n%s", s, report)
				}
			}
		})
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteHitReport_WriteError(t *testing.T) {
	hit := core.HitResult{GeomID: 0, PrimID: 0, InstID: core.InvalidGeometryID}
	if err := WriteHitReport(failingWriter{}, hit); !errors.Is(err, errWrite) {
		t.Errorf("Expected write error, got %v", err)
	}
}
