package main

import (
	"testing"

	"github.com/vovakirdan/helix/internal/config"
	"github.com/vovakirdan/helix/internal/mesh"
)

func TestBuildShape(t *testing.T) {
	cfg := config.DefaultHelixConfig()
	tests := []struct {
		name      string
		segments  int
		triangles int
	}{
		{"cylinder", 0, 160},
		{"cylinder", 8, 32},
		{"sphere", 4, 2*4*3 + 4},
		{"platform", 0, 36},
	}
	for _, tt := range tests {
		shape, err := buildShape(tt.name, cfg, tt.segments)
		if err != nil {
			t.Fatalf("buildShape(%s, %d) failed: %v", tt.name, tt.segments, err)
		}
		if got := shape.TriangleCount(); got != tt.triangles {
			t.Errorf("buildShape(%s, %d) triangles = %d, want %d", tt.name, tt.segments, got, tt.triangles)
		}
		m, err := shape.Mesh(true)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := mesh.Check(m); err != nil {
			t.Errorf("%s not closed: %v", tt.name, err)
		}
	}

	if _, err := buildShape("cube", cfg, 0); err == nil {
		t.Error("expected error for unknown shape")
	}
	if _, err := buildShape("sphere", cfg, 2); err == nil {
		t.Error("expected error for too few rings")
	}
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"nohost":         "nohost",
	}
	for in, want := range tests {
		if got := port(in); got != want {
			t.Errorf("port(%q) = %q, want %q", in, got, want)
		}
	}
}
