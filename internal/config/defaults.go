package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/helix.yaml
var defaultHelixYAML []byte

// DefaultHelixConfig returns the hardcoded configuration, matching the
// embedded defaults/helix.yaml.
func DefaultHelixConfig() HelixConfig {
	return HelixConfig{
		Physics: PhysicsConfig{
			Mass:        2,
			Gravity:     Vec3{0, -9.8, 0},
			FloorY:      0.3,
			LaunchForce: Vec3{0, 10, 0},
		},
		Ball: BallConfig{
			Start:  Vec3{0, 11, 1},
			Force:  Vec3{0, 10, 0},
			Radius: 0.3,
			Rings:  40,
		},
		Camera: CameraConfig{
			Distance:     5,
			Drop:         0.5,
			FollowOffset: 1,
			FovY:         70,
			Near:         0.1,
			Far:          100,
			OrbitSpeed:   math.Pi / 2,
		},
		Tower: TowerConfig{
			ShaftHeight:   10,
			ShaftSegments: 40,
			Segments:      32,
			Levels:        5,
			SkipEvery:     3,
			LevelHeight:   2,
		},
		Platform: PlatformConfig{
			Samples:     5,
			Height:      0.1,
			InnerRadius: 1,
			OuterRadius: 2,
		},
		Light: LightConfig{
			Position: Vec3{2, 15, -2},
		},
		Shaders: ShaderConfig{
			Dir:      "shaders",
			Vertex:   "vertex.glsl",
			Fragment: "fragment.glsl",
		},
		Host: HostConfig{
			StateSize: 1 << 20,
			Settle:    0,
			FPS:       60,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultHelixYAML
}
