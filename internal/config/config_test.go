package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := DefaultHelixConfig()
	if cfg != want {
		t.Errorf("embedded defaults differ from hardcoded:\n%+v\n%+v", cfg, want)
	}
	if err := want.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestSearchOrder(t *testing.T) {
	home, work := isolate(t)

	if got := Resolve(""); got != "" {
		t.Errorf("Resolve() with no files = %q, want empty", got)
	}

	local := filepath.Join(work, "configs", FileName)
	writeFile(t, local, "physics:\n  mass: 3\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Mass != 3 {
		t.Errorf("local config not used, mass = %v", cfg.Physics.Mass)
	}

	user := filepath.Join(home, ".helix", "configs", FileName)
	writeFile(t, user, "physics:\n  mass: 4\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Mass != 4 {
		t.Errorf("user config should win over local, mass = %v", cfg.Physics.Mass)
	}
	if got := Resolve(""); got != user {
		t.Errorf("Resolve() = %q, want %q", got, user)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "physics:\n  mass: 5\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Mass != 5 {
		t.Errorf("custom config should win, mass = %v", cfg.Physics.Mass)
	}
}

func TestInvalidSearchFileFallsThrough(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, ".helix", "configs", FileName), "physics: [not a map")
	writeFile(t, filepath.Join(work, "configs", FileName), "physics:\n  mass: 7\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Mass != 7 {
		t.Errorf("mass = %v, want 7 from the local file", cfg.Physics.Mass)
	}
}

func TestCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "physics:\n  mass: -1\n")
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "physics.mass") {
		t.Errorf("expected validation error naming physics.mass, got %v", err)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("camera:\n  fov_y: 90\n"), "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.FovY != 90 {
		t.Errorf("fov_y = %v, want 90", cfg.Camera.FovY)
	}
	if cfg.Tower.Segments != 32 || cfg.Physics.Gravity != (Vec3{0, -9.8, 0}) {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helix.toml")
	writeFile(t, path, `
[physics]
mass = 1.5
gravity = [0.0, -1.6, 0.0]

[tower]
levels = 8
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Physics.Mass != 1.5 || cfg.Physics.Gravity[1] != -1.6 || cfg.Tower.Levels != 8 {
		t.Errorf("toml values not applied: %+v", cfg)
	}
	if cfg.Platform.Samples != 5 {
		t.Errorf("default samples lost: %d", cfg.Platform.Samples)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			want := DefaultHelixConfig()
			want.Tower.Levels = 9

			var buf bytes.Buffer
			if err := Write(&buf, want, format); err != nil {
				t.Fatalf("Write() failed: %v", err)
			}
			got, err := Parse(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Parse() failed: %v\n%s", err, buf.String())
			}
			if got != want {
				t.Errorf("round trip mismatch:\n%+v\n%+v", got, want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HelixConfig)
	}{
		{"zero mass", func(c *HelixConfig) { c.Physics.Mass = 0 }},
		{"two segments", func(c *HelixConfig) { c.Tower.Segments = 2 }},
		{"inverted radii", func(c *HelixConfig) { c.Platform.InnerRadius = 3 }},
		{"one sample", func(c *HelixConfig) { c.Platform.Samples = 1 }},
		{"far before near", func(c *HelixConfig) { c.Camera.Far = 0.01 }},
		{"tiny state", func(c *HelixConfig) { c.Host.StateSize = 8 }},
		{"no shader", func(c *HelixConfig) { c.Shaders.Vertex = "" }},
		{"negative settle", func(c *HelixConfig) { c.Host.Settle = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultHelixConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGravityPresets(t *testing.T) {
	for _, name := range []string{"earth", "moon", "heavy"} {
		p, err := ParseGravityPreset(name)
		if err != nil {
			t.Fatalf("ParseGravityPreset(%q): %v", name, err)
		}
		if p.String() != name {
			t.Errorf("String() = %q, want %q", p.String(), name)
		}
	}
	if _, err := ParseGravityPreset("jupiter"); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg := DefaultHelixConfig()
	ApplyGravityPreset(&cfg, GravityEarth)
	if cfg != DefaultHelixConfig() {
		t.Error("earth preset changed the config")
	}

	ApplyGravityPreset(&cfg, GravityMoon)
	if cfg.Physics.Gravity[1] >= 0 || cfg.Physics.Gravity[1] <= -9.8/2 {
		t.Errorf("moon gravity = %v", cfg.Physics.Gravity)
	}
	if cfg.Physics.LaunchForce[1] >= 10 {
		t.Errorf("moon launch force = %v", cfg.Physics.LaunchForce)
	}
}
