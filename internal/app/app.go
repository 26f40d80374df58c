// Package app wires the window, renderer, input, and animation core
// into the main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hollowmoon/gorefold/internal/config"
	"github.com/hollowmoon/gorefold/internal/engine/anim"
	"github.com/hollowmoon/gorefold/internal/engine/balls"
	"github.com/hollowmoon/gorefold/internal/engine/camera"
	"github.com/hollowmoon/gorefold/internal/engine/geometry"
	"github.com/hollowmoon/gorefold/internal/engine/input"
	"github.com/hollowmoon/gorefold/internal/engine/renderer"
	"github.com/hollowmoon/gorefold/internal/engine/scene"
	"github.com/hollowmoon/gorefold/internal/engine/window"
	"github.com/hollowmoon/gorefold/internal/logger"
)

const windowTitle = "gorefold"

// maxFrameDT caps the simulation step after stalls (window drag, debugger).
const maxFrameDT = float32(0.1)

// App is the running application.
type App struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	machine  *anim.Machine

	running bool
	// auto advances the idle steps after their derived hold duration.
	auto bool
}

// New builds the application from configuration. The window and GL
// context come up here; call Close when done.
func New(cfg *config.Config) (*App, error) {
	machineCfg, err := machineConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, auto: true}

	a.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.machine = anim.New(machineCfg)
	// Panel slots release their GPU buffers before the core replaces them.
	a.machine.Scene().SetDisposeFunc(a.renderer.DisposePanel)

	a.input = input.New()
	a.camera = camera.New()

	logger.Info("app initialized",
		zap.Int("panels", machineCfg.PanelCount),
		zap.String("grid", machineCfg.GridMode.String()),
		zap.String("deform", machineCfg.DeformMode.String()),
	)
	return a, nil
}

// machineConfig translates the loaded configuration into the animation
// core's config, validating the grid mode names.
func machineConfig(cfg *config.Config) (anim.Config, error) {
	gridMode, err := geometry.ParseMode(cfg.Scene.GridMode)
	if err != nil {
		return anim.Config{}, fmt.Errorf("grid_mode: %w", err)
	}
	deformMode, err := geometry.ParseMode(cfg.Scene.DeformMode)
	if err != nil {
		return anim.Config{}, fmt.Errorf("deform_mode: %w", err)
	}

	specs := make([]scene.SphereSpec, len(cfg.Scene.Spheres))
	for i, s := range cfg.Scene.Spheres {
		specs[i] = scene.SphereSpec{Radius: s.Radius, RestY: s.RestY, Color: s.Color}
	}

	return anim.Config{
		PanelCount: cfg.Scene.PanelCount,
		GridMode:   gridMode,
		DeformMode: deformMode,
		TwistTurns: cfg.Scene.TwistTurns,
		AlignY:     cfg.Scene.AlignY,
		Spheres:    specs,
		Timings: anim.Timings{
			CirclesMove:    cfg.Timeline.CirclesMove,
			FormingGores:   cfg.Timeline.FormingGores,
			Unwrapping:     cfg.Timeline.Unwrapping,
			Wrapping:       cfg.Timeline.Wrapping,
			DeformingGores: cfg.Timeline.DeformingGores,
			TypeSpeed:      cfg.Timeline.TypeSpeed,
		},
		Balls: balls.Config{Max: cfg.Balls.Max, Fade: cfg.Balls.Fade},
		Seed:  uint64(time.Now().UnixNano()),
	}, nil
}

// Run executes the main loop until quit.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	lastCaption := ""

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		if dt > maxFrameDT {
			dt = maxFrameDT
		}

		if !a.input.Poll() {
			a.running = false
			break
		}
		a.handleEvents()

		if dx, dy := a.input.DragDelta(); dx != 0 || dy != 0 {
			a.camera.HandleDrag(dx, dy)
		}
		if wheel := a.input.Wheel(); wheel != 0 {
			a.camera.HandleZoom(wheel)
		}

		a.machine.Tick(dt)
		if a.auto {
			a.autoAdvance()
		}

		frame := a.machine.Frame()
		a.renderer.Render(frame, a.camera)
		a.machine.ClearDirty()

		// The caption timeline types into the window title.
		if caption := frame.Caption.Text[:frame.Caption.Typed]; caption != lastCaption {
			lastCaption = caption
			if caption == "" {
				a.window.SetTitle(windowTitle)
			} else {
				a.window.SetTitle(windowTitle + ": " + caption)
			}
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.String("step", a.machine.Step().String()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if limit := a.cfg.Graphics.FPSLimit; limit > 0 {
			if budget := time.Second / time.Duration(limit); time.Since(now) < budget {
				time.Sleep(budget - time.Since(now))
			}
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Action {
		case input.ActionQuit:
			a.running = false
		case input.ActionResize:
			a.renderer.Resize(e.Width, e.Height)
		case input.ActionAdvance:
			a.advanceIdle()
		case input.ActionToggleAuto:
			a.auto = !a.auto
			logger.Info("auto advance toggled", zap.Bool("auto", a.auto))
		}
	}
}

// advanceIdle fires whichever idle trigger applies; both calls are
// guarded no-ops outside their step.
func (a *App) advanceIdle() {
	a.machine.StartWrap()
	a.machine.StartUnwrap()
}

// autoAdvance leaves an idle step once its derived caption hold expires.
func (a *App) autoAdvance() {
	step := a.machine.Step()
	if step != anim.StepUnwrappedIdle && step != anim.StepEyeIdle {
		return
	}
	if a.machine.Elapsed() >= a.machine.IdleHold(step) {
		a.advanceIdle()
	}
}

// Close releases everything in reverse creation order.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
