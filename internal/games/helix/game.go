// Package helix is the spiral tower module: a ball falls through a helix of
// platforms around a central shaft while the camera follows it down.
package helix

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/helix/internal/config"
	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/mesh"
	"github.com/vovakirdan/helix/internal/module"
	"github.com/vovakirdan/helix/internal/physics"
	"github.com/vovakirdan/helix/internal/render"
	"github.com/vovakirdan/helix/internal/scene"
	"github.com/vovakirdan/helix/internal/state"
)

// ID is the registry identifier of the module.
const ID = "helix"

// Relaunch is the button that drops the ball again from its start position.
const Relaunch = 0

// Game implements the helix module.
type Game struct {
	env    module.Env
	logger *log.Logger
	cfg    config.HelixConfig
	params physics.Params

	st *state.Block
	gs GameState

	// Device resources, owned by this instance
	meshes  []render.MeshHandle
	program render.ProgramHandle

	frame  scene.Frame
	ball   *scene.Drawable
	camera scene.Camera
	ready  bool
}

// New creates an uninitialized helix module.
func New() *Game {
	return &Game{}
}

func init() {
	module.Register(ID, func() module.Module {
		return New()
	})
}

func (g *Game) ID() string    { return ID }
func (g *Game) Title() string { return "Helix Tower" }

// Schemas lists the state schemas Initialize accepts on reinit.
func (g *Game) Schemas() []uint16 { return []uint16{SchemaV1, SchemaV2} }

// Initialize loads the tuning config, restores or seeds the simulation state
// and builds the scene on env.Device.
func (g *Game) Initialize(env module.Env, reinit bool, st *state.Block) error {
	if g.ready {
		g.Cleanup()
	}
	g.env = env
	g.st = st
	g.logger = env.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		return fmt.Errorf("helix: %w", err)
	}
	config.ApplyGravityPreset(&cfg, env.Gravity)
	g.cfg = cfg
	g.params = physicsParams(cfg)

	if reinit {
		gs, err := LoadGameState(st)
		if err != nil {
			return fmt.Errorf("helix: restore state: %w", err)
		}
		g.gs = gs
	} else {
		g.gs = coldState(cfg)
	}
	// Commit immediately so older schemas are upgraded in place
	if err := g.gs.Save(st); err != nil {
		return fmt.Errorf("helix: commit state: %w", err)
	}

	// Read shader sources before creating any device resource
	src, err := render.LoadShaders(g.shaderDir(), cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		return fmt.Errorf("helix: %w", err)
	}

	if err := g.build(src); err != nil {
		g.Cleanup()
		return fmt.Errorf("helix: %w", err)
	}

	g.ready = true
	g.logger.Info("module initialized",
		"reinit", reinit,
		"sections", len(g.frame.Static)-1,
		"height", g.gs.CameraHeight,
		"bounces", g.gs.Bounces)
	return nil
}

func (g *Game) shaderDir() string {
	dir := g.cfg.Shaders.Dir
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(g.env.AssetDir, dir)
}

// build creates meshes, the program and the drawables.
func (g *Game) build(src render.ShaderSource) error {
	dev := g.env.Device
	if dev == nil {
		return fmt.Errorf("no render device")
	}

	cyl, err := mesh.Cylinder(g.cfg.Tower.ShaftSegments, g.cfg.Tower.ShaftHeight)
	if err != nil {
		return err
	}
	sph, err := mesh.Sphere(g.cfg.Ball.Rings)
	if err != nil {
		return err
	}
	plat, err := mesh.PlatformSection(platformParams(g.cfg))
	if err != nil {
		return err
	}

	handles := make([]render.MeshHandle, 0, 3)
	for _, s := range []*mesh.Shape{cyl, sph, plat} {
		m, err := s.Mesh(true)
		if err != nil {
			return err
		}
		h, err := dev.UploadMesh(m)
		if err != nil {
			return fmt.Errorf("upload %s: %w", s.Name, err)
		}
		handles = append(handles, h)
		g.meshes = append(g.meshes, h)
	}

	g.program, err = dev.CompileProgram(src)
	if err != nil {
		return err
	}

	shaftMesh, sphereMesh, platformMesh := handles[0], handles[1], handles[2]
	shaft := mgl32.Ident4()

	placements := scene.Placements(shaft, towerParams(g.cfg))
	static := make([]scene.Drawable, 0, len(placements)+1)
	static = append(static, scene.Drawable{Transform: shaft, Mesh: shaftMesh, Color: scene.Blue})
	for _, t := range placements {
		static = append(static, scene.Drawable{Transform: t, Mesh: platformMesh, Color: scene.Blue})
	}

	aspect := g.env.Aspect
	if aspect <= 0 {
		aspect = 4.0 / 3.0
	}
	lens := scene.Lens{FovY: g.cfg.Camera.FovY, Near: g.cfg.Camera.Near, Far: g.cfg.Camera.Far}

	g.frame = scene.Frame{
		Static:     static,
		Dynamic:    []scene.Drawable{{Mesh: sphereMesh, Color: scene.Red}},
		Projection: lens.Projection(aspect),
		Light:      mgl32.Vec3(g.cfg.Light.Position),
		Clear:      scene.Clear,
	}
	g.ball = &g.frame.Dynamic[0]
	g.camera = scene.Camera{Distance: g.cfg.Camera.Distance, Drop: g.cfg.Camera.Drop}
	g.refresh()
	return nil
}

// Update advances the ball one step, moves the camera and commits the state.
func (g *Game) Update(keys core.KeyState, dtMillis uint64) {
	if !g.ready {
		return
	}
	dt := physics.Millis(dtMillis)

	g.gs.CameraYaw += keys.Horizontal() * g.cfg.Camera.OrbitSpeed * dt

	if keys.Button(Relaunch) {
		launch := coldState(g.cfg)
		g.gs.BallPosition = launch.BallPosition
		g.gs.BallVelocity = launch.BallVelocity
		g.gs.BallForce = launch.BallForce
		g.gs.CameraHeight = launch.CameraHeight
	}

	body := physics.Body{
		Position: g.gs.BallPosition,
		Velocity: g.gs.BallVelocity,
		Force:    g.gs.BallForce,
	}
	if physics.Step(&body, g.params, dt) {
		g.gs.Bounces++
	}
	g.gs.BallPosition = body.Position
	g.gs.BallVelocity = body.Velocity
	g.gs.BallForce = body.Force
	g.gs.CameraHeight = physics.FollowCamera(g.gs.CameraHeight, body.Position.Y(), g.cfg.Camera.FollowOffset)

	if err := g.gs.Save(g.st); err != nil {
		g.logger.Error("commit state", "err", err)
	}
	g.refresh()
}

// refresh recomputes the ball transform and the view from the state.
func (g *Game) refresh() {
	g.ball.Transform = scene.BallTransform(g.gs.BallPosition, g.cfg.Ball.Radius)
	g.camera.Height = g.gs.CameraHeight
	g.camera.Yaw = g.gs.CameraYaw
	g.frame.View = g.camera.View()
}

// Draw renders the tower and the ball.
func (g *Game) Draw() {
	if !g.ready {
		return
	}
	g.frame.Draw(g.env.Device, g.program)
}

// Cleanup releases the meshes and the program. It is safe to call more than
// once.
func (g *Game) Cleanup() {
	dev := g.env.Device
	if dev != nil {
		for _, h := range g.meshes {
			dev.DeleteMesh(h)
		}
		if g.program != 0 {
			dev.DeleteProgram(g.program)
		}
	}
	if g.ready && g.logger != nil {
		g.logger.Info("module cleaned up", "meshes", len(g.meshes))
	}
	g.meshes = nil
	g.program = 0
	g.ball = nil
	g.frame = scene.Frame{}
	g.ready = false
}

// State returns a copy of the simulation state.
func (g *Game) State() GameState {
	return g.gs
}

// Frame returns the scene drawn by Draw.
func (g *Game) Frame() *scene.Frame {
	return &g.frame
}

func coldState(cfg config.HelixConfig) GameState {
	start := mgl32.Vec3(cfg.Ball.Start)
	return GameState{
		CameraHeight: start.Y(),
		BallPosition: start,
		BallForce:    mgl32.Vec3(cfg.Ball.Force),
	}
}

func physicsParams(cfg config.HelixConfig) physics.Params {
	return physics.Params{
		Mass:        cfg.Physics.Mass,
		Gravity:     mgl32.Vec3(cfg.Physics.Gravity),
		FloorY:      cfg.Physics.FloorY,
		LaunchForce: mgl32.Vec3(cfg.Physics.LaunchForce),
	}
}

func towerParams(cfg config.HelixConfig) scene.TowerParams {
	return scene.TowerParams{
		Segments:    cfg.Tower.Segments,
		Levels:      cfg.Tower.Levels,
		SkipEvery:   cfg.Tower.SkipEvery,
		LevelHeight: cfg.Tower.LevelHeight,
	}
}

func platformParams(cfg config.HelixConfig) mesh.PlatformParams {
	return mesh.PlatformParams{
		Samples: cfg.Platform.Samples,
		Height:  cfg.Platform.Height,
		R1:      cfg.Platform.InnerRadius,
		R2:      cfg.Platform.OuterRadius,
		Arc:     2 * math.Pi / float32(cfg.Tower.Segments),
	}
}
