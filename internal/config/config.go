// Package config provides the tuning configuration of the helix module and
// the host. Files are YAML, or TOML when the name ends in .toml.
package config

// Vec3 is an x, y, z triple written as a three element list.
type Vec3 [3]float32

// HelixConfig contains all configuration for the helix tower demo.
type HelixConfig struct {
	Physics  PhysicsConfig  `yaml:"physics" toml:"physics"`
	Ball     BallConfig     `yaml:"ball" toml:"ball"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Tower    TowerConfig    `yaml:"tower" toml:"tower"`
	Platform PlatformConfig `yaml:"platform" toml:"platform"`
	Light    LightConfig    `yaml:"light" toml:"light"`
	Shaders  ShaderConfig   `yaml:"shaders" toml:"shaders"`
	Host     HostConfig     `yaml:"host" toml:"host"`
}

// PhysicsConfig defines the ball integrator constants.
type PhysicsConfig struct {
	Mass        float32 `yaml:"mass" toml:"mass"`
	Gravity     Vec3    `yaml:"gravity" toml:"gravity"`
	FloorY      float32 `yaml:"floor_y" toml:"floor_y"`
	LaunchForce Vec3    `yaml:"launch_force" toml:"launch_force"`
}

// BallConfig defines the ball's cold-start state and size.
type BallConfig struct {
	Start  Vec3    `yaml:"start" toml:"start"`
	Force  Vec3    `yaml:"force" toml:"force"`
	Radius float32 `yaml:"radius" toml:"radius"`
	Rings  int     `yaml:"rings" toml:"rings"`
}

// CameraConfig defines the orbiting camera.
type CameraConfig struct {
	Distance     float32 `yaml:"distance" toml:"distance"`
	Drop         float32 `yaml:"drop" toml:"drop"`
	FollowOffset float32 `yaml:"follow_offset" toml:"follow_offset"`
	FovY         float32 `yaml:"fov_y" toml:"fov_y"`
	Near         float32 `yaml:"near" toml:"near"`
	Far          float32 `yaml:"far" toml:"far"`
	OrbitSpeed   float32 `yaml:"orbit_speed" toml:"orbit_speed"` // radians per second
}

// TowerConfig defines the shaft and the spiral of platform sections.
type TowerConfig struct {
	ShaftHeight   float32 `yaml:"shaft_height" toml:"shaft_height"`
	ShaftSegments int     `yaml:"shaft_segments" toml:"shaft_segments"`
	Segments      int     `yaml:"segments" toml:"segments"`
	Levels        int     `yaml:"levels" toml:"levels"`
	SkipEvery     int     `yaml:"skip_every" toml:"skip_every"`
	LevelHeight   float32 `yaml:"level_height" toml:"level_height"`
}

// PlatformConfig defines one platform ring section. The arc is one tower
// segment.
type PlatformConfig struct {
	Samples     int     `yaml:"samples" toml:"samples"`
	Height      float32 `yaml:"height" toml:"height"`
	InnerRadius float32 `yaml:"inner_radius" toml:"inner_radius"`
	OuterRadius float32 `yaml:"outer_radius" toml:"outer_radius"`
}

// LightConfig defines the point light.
type LightConfig struct {
	Position Vec3 `yaml:"position" toml:"position"`
}

// ShaderConfig names the shader pair. Dir is relative to the asset
// directory unless absolute.
type ShaderConfig struct {
	Dir      string `yaml:"dir" toml:"dir"`
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
}

// HostConfig defines launcher behavior.
type HostConfig struct {
	StateSize int `yaml:"state_size" toml:"state_size"` // bytes
	Settle    int `yaml:"settle" toml:"settle"`         // stable polls before reload
	FPS       int `yaml:"fps" toml:"fps"`
}
