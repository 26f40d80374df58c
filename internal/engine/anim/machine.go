package anim

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/hollowmoon/gorefold/internal/engine/balls"
	"github.com/hollowmoon/gorefold/internal/engine/constraint"
	"github.com/hollowmoon/gorefold/internal/engine/geometry"
	"github.com/hollowmoon/gorefold/internal/engine/scene"
	"github.com/hollowmoon/gorefold/pkg/math"
)

// dropHeight is how far above its resting height a sphere enters the
// opening step.
const dropHeight = float32(3.0)

// ballLift floats agents slightly off the panel surface so they never
// z-fight with it.
const ballLift = float32(0.02)

// Config holds everything the machine needs at construction. All of it
// is static; there is no reconfiguration at runtime.
type Config struct {
	PanelCount int
	GridMode   geometry.GridMode
	DeformMode geometry.GridMode
	TwistTurns float32
	AlignY     float32
	Spheres    []scene.SphereSpec
	Timings    Timings
	Balls      balls.Config
	Seed       uint64
}

// PanelView is one panel's render data for a frame.
type PanelView struct {
	Sphere int
	Index  int
	Mesh   *geometry.Mesh
	// Transform is the panel's local-to-world matrix.
	Transform math.Mat4
	Color     [3]float32
	// CircleAlpha and GoreAlpha drive the outline crossfade overlays.
	CircleAlpha float32
	GoreAlpha   float32
	Dirty       bool
}

// BallView is one agent's render data for a frame.
type BallView struct {
	Position math.Vec3 // world space
	Color    [3]float32
	Alpha    float32
}

// Frame is the complete per-frame output the renderer consumes. The
// core hands out geometry and state only; draw calls are the
// renderer's business.
type Frame struct {
	Step    Step
	Panels  []PanelView
	Balls   []BallView
	Caption CaptionState
}

// Machine is the animation state machine. It owns the scene and the
// ball simulation; nothing else mutates panels once they exist.
type Machine struct {
	cfg Config

	scn      *scene.Scene
	sim      *balls.Sim
	captions *captionTimeline

	step    Step
	elapsed float32

	unfold     float32
	transition float32
	twist      float32

	dropTweens []*gween.Tween
	regions    map[[2]int]*constraint.Region
}

// New creates the machine in StepCirclesMove with a freshly built scene.
func New(cfg Config) *Machine {
	if cfg.PanelCount <= 0 {
		cfg.PanelCount = 9
	}
	if cfg.TwistTurns <= 0 {
		cfg.TwistTurns = 1.5
	}

	m := &Machine{
		cfg:      cfg,
		scn:      scene.New(cfg.Spheres),
		sim:      balls.New(cfg.Balls, cfg.Seed),
		captions: newCaptionTimeline(cfg.Timings.TypeSpeed),
		regions:  make(map[[2]int]*constraint.Region),
	}
	m.enter(StepCirclesMove)
	return m
}

// Scene exposes the panel arena, primarily for the renderer's dispose hook.
func (m *Machine) Scene() *scene.Scene {
	return m.scn
}

// Step returns the active step.
func (m *Machine) Step() Step {
	return m.step
}

// Elapsed returns the time spent in the active step.
func (m *Machine) Elapsed() float32 {
	return m.elapsed
}

// Unfold returns the current unfold progress.
func (m *Machine) Unfold() float32 {
	return m.unfold
}

// StartWrap begins re-wrapping. It is a no-op unless the machine sits
// in StepUnwrappedIdle; the guard keeps stray triggers from re-entering
// a running phase.
func (m *Machine) StartWrap() {
	if m.step != StepUnwrappedIdle {
		return
	}
	m.enter(StepWrapping)
}

// StartUnwrap restarts the cycle. No-op unless in StepEyeIdle.
func (m *Machine) StartUnwrap() {
	if m.step != StepEyeIdle {
		return
	}
	m.enter(StepCirclesMove)
}

// IdleHold returns the derived caption hold duration for the given idle
// step; an automated presentation uses it to schedule the triggers.
func (m *Machine) IdleHold(s Step) float32 {
	return m.captions.holdDuration(m.cfg.Timings, s)
}

// Tick advances the machine by dt seconds. One call per frame.
func (m *Machine) Tick(dt float32) {
	m.elapsed += dt
	dur := m.cfg.Timings.duration(m.step)

	switch m.step {
	case StepCirclesMove:
		m.tickCirclesMove(dt)
	case StepFormingGores:
		m.tickFormingGores(progress(m.elapsed, dur))
	case StepUnwrapping:
		m.tickUnwrapping(progress(m.elapsed, dur))
	case StepUnwrappedIdle:
		// Shape is static; only agents and captions move.
	case StepWrapping:
		m.tickWrapping(progress(m.elapsed, dur))
	case StepDeformingGores:
		m.tickDeformingGores(progress(m.elapsed, dur))
	case StepEyeIdle:
		// Static until StartUnwrap.
	}

	m.captions.update(dt)
	m.sim.Update(dt)

	// The remainder beyond the step duration carries into the next
	// step, so fixed-step totals line up with the summed durations.
	// External triggers enter with elapsed zeroed instead.
	if !m.step.idle() && m.elapsed >= dur {
		carry := m.elapsed - dur
		m.enter(m.step.next())
		m.elapsed = carry
	}
}

// progress divides elapsed by the configured duration, clamped to
// [0,1]; elapsed may overshoot the duration by up to one frame.
func progress(elapsed, dur float32) float32 {
	if dur <= 0 {
		return 1
	}
	return math.Clamp01(elapsed / dur)
}

// enter switches to a step and runs its entry actions.
func (m *Machine) enter(s Step) {
	slog.Debug("anim step", "from", m.step.String(), "to", s.String())
	m.step = s
	m.elapsed = 0
	m.captions.setStep(s)

	switch s {
	case StepCirclesMove:
		m.resetScene()
	case StepUnwrappedIdle:
		m.unfold = 1
		m.twist = 0
		m.scn.UpdateMeshes(1, 0)
		m.spawnBalls()
	case StepWrapping:
		m.sim.FadeOutAll()
	case StepDeformingGores:
		m.sim.Clear()
		// Grid mode swap: the next mesh update takes the slow rebuild
		// path for every panel.
		m.scn.SetMode(m.cfg.DeformMode)
	}
}

// resetScene rebuilds everything for the start of a cycle: wrapped
// spheres in the 3-slice circle layout, dropped in from above.
func (m *Machine) resetScene() {
	m.unfold = 0
	m.transition = 1
	m.twist = 0
	clear(m.regions)

	m.scn.SetMode(m.cfg.GridMode)
	m.scn.Rebuild(m.cfg.PanelCount, m.cfg.GridMode, 0, 1)
	m.sim.Invalidate(m.scn.Generation)

	m.dropTweens = m.dropTweens[:0]
	for _, g := range m.scn.Groups {
		g.Y = g.RestY + dropHeight
		m.dropTweens = append(m.dropTweens,
			gween.New(g.Y, g.RestY, m.cfg.Timings.CirclesMove, ease.InOutCubic))
	}
	m.applyGroupHeights()
	m.setOutlines(1, 0)
}

func (m *Machine) tickCirclesMove(dt float32) {
	for i, g := range m.scn.Groups {
		y, _ := m.dropTweens[i].Update(dt)
		g.Y = y
	}
	m.applyGroupHeights()
	m.setOutlines(1, 0)
}

func (m *Machine) tickFormingGores(p float32) {
	// Width blends from the 3-slice circle layout to N equal gores
	// while the outlines crossfade.
	m.transition = 1 - p
	m.scn.UpdateMeshes(0, m.transition)
	m.setOutlines(1-p, p)
}

func (m *Machine) tickUnwrapping(p float32) {
	m.unfold = p
	// Helical twist peaks at the midpoint of the unwrap and vanishes at
	// both endpoints.
	m.twist = math32.Sin(math.Pi * p)

	m.alignGroupHeights(p)
	m.scn.UpdateMeshes(p, 0)
	m.setOutlines(0, 1)
}

func (m *Machine) tickWrapping(p float32) {
	m.unfold = 1 - p
	m.twist = 0

	m.alignGroupHeights(1 - p)
	m.scn.UpdateMeshes(m.unfold, 0)
	m.setOutlines(0, 1)
	// Fading agents are still constrained; keep their regions in step
	// with the changing panel shape.
	m.refreshBallRegions()
}

func (m *Machine) tickDeformingGores(p float32) {
	m.transition = p
	m.scn.UpdateMeshes(0, p)
	m.setOutlines(p, 1-p)
}

// alignGroupHeights lerps each sphere group from its resting height
// toward the height that puts every flattened strip's bottom edge on
// the shared alignment line.
func (m *Machine) alignGroupHeights(p float32) {
	for _, g := range m.scn.Groups {
		target := m.cfg.AlignY + g.Radius*math.Pi/2
		g.Y = math.Lerp(g.RestY, target, p)
	}
	m.applyGroupHeights()
}

func (m *Machine) applyGroupHeights() {
	for _, g := range m.scn.Groups {
		for _, p := range g.Panels {
			p.Position = math.Vec3{Y: g.Y}
			p.Dirty = true
		}
	}
}

func (m *Machine) setOutlines(circle, gore float32) {
	for _, p := range m.scn.Panels() {
		p.CircleAlpha = circle
		p.GoreAlpha = gore
	}
}

// spawnBalls places up to the configured number of agents on evenly
// spaced outer-sphere panels.
func (m *Machine) spawnBalls() {
	if len(m.scn.Groups) == 0 || m.cfg.Balls.Max <= 0 {
		return
	}

	all := m.scn.Panels()
	count := m.cfg.Balls.Max
	if count > m.cfg.PanelCount {
		count = m.cfg.PanelCount
	}

	stride := m.cfg.PanelCount / count
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < count; i++ {
		panel := m.scn.PanelAt(0, i*stride)
		if panel == nil {
			continue
		}
		region := constraint.NewRegion(panel, all)
		m.regions[[2]int{0, panel.Index}] = region
		m.sim.Spawn(balls.Slot{
			Sphere:     0,
			Panel:      panel.Index,
			Generation: m.scn.Generation,
		}, region, panel.Color)
	}
}

// refreshBallRegions recomputes the allowed region for every panel that
// currently hosts an agent.
func (m *Machine) refreshBallRegions() {
	if len(m.sim.Balls()) == 0 {
		return
	}
	all := m.scn.Panels()
	seen := map[[2]int]bool{}
	for _, b := range m.sim.Balls() {
		key := [2]int{b.Slot.Sphere, b.Slot.Panel}
		if seen[key] {
			continue
		}
		seen[key] = true

		panel := m.scn.PanelAt(b.Slot.Sphere, b.Slot.Panel)
		if panel == nil {
			continue
		}
		region := constraint.NewRegion(panel, all)
		m.regions[key] = region
		m.sim.SetRegion(b.Slot.Sphere, b.Slot.Panel, region)
	}
}

// Frame assembles the per-frame render output.
func (m *Machine) Frame() Frame {
	f := Frame{
		Step:    m.step,
		Caption: m.captions.state(),
	}

	for _, p := range m.scn.Panels() {
		mesh := p.Mesh
		if m.twist > 0 {
			mesh = geometry.ApplyTwist(p.Mesh, m.twist, m.cfg.TwistTurns)
		}
		f.Panels = append(f.Panels, PanelView{
			Sphere:      p.Sphere,
			Index:       p.Index,
			Mesh:        mesh,
			Transform:   p.Transform(),
			Color:       p.Color,
			CircleAlpha: p.CircleAlpha,
			GoreAlpha:   p.GoreAlpha,
			Dirty:       p.Dirty,
		})
	}

	for _, b := range m.sim.Balls() {
		panel := m.scn.PanelAt(b.Slot.Sphere, b.Slot.Panel)
		if panel == nil {
			continue
		}
		world := panel.LocalToWorld(math.Vec3{X: b.Pos.X, Y: b.Pos.Y, Z: ballLift})
		f.Balls = append(f.Balls, BallView{
			Position: world,
			Color:    b.Color,
			Alpha:    b.Alpha,
		})
	}

	return f
}

// ClearDirty marks every panel as uploaded; the renderer calls this
// after consuming a frame.
func (m *Machine) ClearDirty() {
	for _, p := range m.scn.Panels() {
		p.Dirty = false
	}
}
