package config

import (
	"errors"
	"fmt"
)

// Validate rejects configurations the module cannot build a scene from.
func (c HelixConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Mass > 0, "physics.mass must be positive, got %g", c.Physics.Mass)
	check(c.Ball.Radius > 0, "ball.radius must be positive, got %g", c.Ball.Radius)
	check(c.Ball.Rings >= 3, "ball.rings must be at least 3, got %d", c.Ball.Rings)
	check(c.Camera.Distance > 0, "camera.distance must be positive, got %g", c.Camera.Distance)
	check(c.Camera.FovY > 0 && c.Camera.FovY < 180, "camera.fov_y must be in (0, 180), got %g", c.Camera.FovY)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near,
		"camera clip range must satisfy 0 < near < far, got %g..%g", c.Camera.Near, c.Camera.Far)
	check(c.Tower.ShaftHeight > 0, "tower.shaft_height must be positive, got %g", c.Tower.ShaftHeight)
	check(c.Tower.ShaftSegments >= 3, "tower.shaft_segments must be at least 3, got %d", c.Tower.ShaftSegments)
	check(c.Tower.Segments >= 3, "tower.segments must be at least 3, got %d", c.Tower.Segments)
	check(c.Tower.Levels >= 1, "tower.levels must be at least 1, got %d", c.Tower.Levels)
	check(c.Tower.SkipEvery >= 0, "tower.skip_every must not be negative, got %d", c.Tower.SkipEvery)
	check(c.Platform.Samples >= 2, "platform.samples must be at least 2, got %d", c.Platform.Samples)
	check(c.Platform.Height > 0, "platform.height must be positive, got %g", c.Platform.Height)
	check(c.Platform.InnerRadius > 0 && c.Platform.InnerRadius < c.Platform.OuterRadius,
		"platform radii must satisfy 0 < inner < outer, got %g, %g", c.Platform.InnerRadius, c.Platform.OuterRadius)
	check(c.Shaders.Vertex != "" && c.Shaders.Fragment != "", "shaders.vertex and shaders.fragment are required")
	check(c.Host.StateSize >= 64, "host.state_size must be at least 64 bytes, got %d", c.Host.StateSize)
	check(c.Host.Settle >= 0, "host.settle must not be negative, got %d", c.Host.Settle)
	check(c.Host.FPS > 0, "host.fps must be positive, got %d", c.Host.FPS)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
