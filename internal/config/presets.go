package config

import "fmt"

// GravityPreset selects a gravity and launch force pair.
type GravityPreset int

const (
	GravityEarth GravityPreset = iota
	GravityMoon
	GravityHeavy
)

// String returns the preset name.
func (p GravityPreset) String() string {
	switch p {
	case GravityMoon:
		return "moon"
	case GravityHeavy:
		return "heavy"
	default:
		return "earth"
	}
}

// ParseGravityPreset parses a preset name.
func ParseGravityPreset(s string) (GravityPreset, error) {
	switch s {
	case "", "earth":
		return GravityEarth, nil
	case "moon":
		return GravityMoon, nil
	case "heavy":
		return GravityHeavy, nil
	default:
		return GravityEarth, fmt.Errorf("config: unknown gravity preset %q", s)
	}
}

// ApplyGravityPreset scales gravity and the launch force of cfg. Earth leaves
// the configured values alone.
func ApplyGravityPreset(cfg *HelixConfig, preset GravityPreset) {
	var scale float32
	switch preset {
	case GravityMoon:
		scale = 0.165
	case GravityHeavy:
		scale = 2.5
	default:
		return
	}
	for i := range cfg.Physics.Gravity {
		cfg.Physics.Gravity[i] *= scale
		cfg.Physics.LaunchForce[i] *= scale
	}
}
