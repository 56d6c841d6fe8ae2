//go:build cgo

// Package window is the desktop frontend: a GLFW window with an OpenGL 4.1
// core context. Keyboard and the first gamepad feed the KeyState.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/vovakirdan/helix/internal/core"
	"github.com/vovakirdan/helix/internal/platform/session"
	"github.com/vovakirdan/helix/internal/render/opengl"
)

// ErrNotMainThread is returned when Run is not called on the main OS thread.
var ErrNotMainThread = errors.New("window: must run on the main thread")

// Run opens a window and drives the session options until the window is
// closed or the host fails. GLFW requires the main OS thread: the program
// must lock its main goroutine in init() and call Run from it.
func Run(opts session.Options, cfg core.RuntimeConfig, title string) error {
	if !onMainThread() {
		return ErrNotMainThread
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.ScreenW, cfg.ScreenH, title, nil, nil)
	if err != nil {
		return fmt.Errorf("window: create: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	dev, err := opengl.New()
	if err != nil {
		return err
	}
	fbw, fbh := win.GetFramebufferSize()
	dev.Viewport(fbw, fbh)

	s, err := session.Open(opts, dev, aspect(fbw, fbh))
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Start(); err != nil {
		return err
	}
	if opts.Logger != nil {
		opts.Logger.Info("window opened", "gl", dev.Version(), "width", fbw, "height", fbh)
	}

	resized := false
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		fbw, fbh = w, h
		resized = true
	})

	reload := false
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape, glfw.KeyQ:
			w.SetShouldClose(true)
		case glfw.KeyR:
			reload = true
		}
	})

	last := time.Now()
	for !win.ShouldClose() {
		glfw.PollEvents()

		if resized && fbw > 0 && fbh > 0 {
			resized = false
			dev.Viewport(fbw, fbh)
			s.Host.SetAspect(aspect(fbw, fbh))
			reload = true
		}
		if reload {
			reload = false
			if err := s.Host.Reload(); err != nil {
				return err
			}
		}

		now := time.Now()
		dt := uint64(now.Sub(last).Milliseconds())
		last = now
		if err := s.Host.Frame(readKeys(win), dt); err != nil {
			return err
		}
		win.SwapBuffers()
	}
	return nil
}

func aspect(w, h int) float32 {
	cfg := core.RuntimeConfig{ScreenW: w, ScreenH: h, CellAspect: 1}
	return cfg.Aspect()
}

var dirKeys = [4][2]glfw.Key{
	core.DirUp:    {glfw.KeyUp, glfw.KeyW},
	core.DirDown:  {glfw.KeyDown, glfw.KeyS},
	core.DirLeft:  {glfw.KeyLeft, glfw.KeyA},
	core.DirRight: {glfw.KeyRight, glfw.KeyD},
}

// readKeys samples the keyboard and the first gamepad.
func readKeys(win *glfw.Window) core.KeyState {
	var ks core.KeyState
	for d, keys := range dirKeys {
		for _, k := range keys {
			if win.GetKey(k) == glfw.Press {
				ks.SetDir(core.Direction(d), true)
			}
		}
	}
	if win.GetKey(glfw.KeySpace) == glfw.Press {
		ks.SetButton(0, true)
	}

	if !glfw.Joystick1.IsGamepad() {
		return ks
	}
	pad := glfw.Joystick1.GetGamepadState()
	if pad == nil {
		return ks
	}
	// GLFW reports stick up as negative
	ks.A1X = pad.Axes[glfw.AxisLeftX]
	ks.A1Y = -pad.Axes[glfw.AxisLeftY]
	ks.A2X = pad.Axes[glfw.AxisRightX]
	ks.A2Y = -pad.Axes[glfw.AxisRightY]
	for i := 0; i < len(pad.Buttons) && i < core.NumButtons; i++ {
		if pad.Buttons[i] == glfw.Press {
			ks.SetButton(i, true)
		}
	}
	padDirs := [4]glfw.GamepadButton{
		core.DirUp:    glfw.ButtonDpadUp,
		core.DirDown:  glfw.ButtonDpadDown,
		core.DirLeft:  glfw.ButtonDpadLeft,
		core.DirRight: glfw.ButtonDpadRight,
	}
	for d, b := range padDirs {
		if pad.Buttons[b] == glfw.Press {
			ks.SetDir(core.Direction(d), true)
		}
	}
	return ks
}
