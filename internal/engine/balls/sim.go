// Package balls simulates small autonomous agents that wander the
// allowed region of a gore panel, steered by a wander heading blended
// with a seek target, and hard-constrained to never leave the region.
package balls

import (
	"math/rand/v2"

	"github.com/hollowmoon/gorefold/internal/engine/constraint"
	"github.com/hollowmoon/gorefold/pkg/math"
)

// Steering and containment constants. Tuned for panel-local units
// (panels are a few units across).
const (
	spawnSpeedMin = 0.06
	spawnSpeedMax = 0.14

	retargetDist = 0.08
	retargetProb = 0.005 // per-frame random retarget chance

	wanderJitter = 0.25 // heading perturbation per frame, radians
	seekWeight   = 0.18
	wanderWeight = 0.06
	velBlend     = 0.8 // exponential blend factor, scaled by dt
	velJitter    = 0.005

	speedMin = 0.05
	speedMax = 0.22

	inwardSteer     = 0.15
	containmentIter = 6
	bounceDamping   = 0.9
)

// Slot identifies the panel an agent lives on. Generation ties the
// slot to a specific scene rebuild; agents from older generations are
// dropped rather than left pointing at recycled panel indices.
type Slot struct {
	Sphere     int
	Panel      int
	Generation int
}

// Ball is one autonomous agent confined to a panel.
type Ball struct {
	Slot  Slot
	Pos   math.Vec2
	Vel   math.Vec2
	Color [3]float32
	Alpha float32

	region *constraint.Region
	target math.Vec2
	wander float32 // wander heading, radians
	age    float32
	dying  bool
}

// Target returns the agent's current seek target.
func (b *Ball) Target() math.Vec2 {
	return b.target
}

// Config holds simulation settings.
type Config struct {
	Max  int     // maximum simultaneous agents
	Fade float32 // fade-in/out duration, seconds
}

// Sim runs all agents. Single-threaded; Update is called once per frame.
type Sim struct {
	cfg   Config
	rng   *rand.Rand
	balls []*Ball
}

// New creates a simulation. The seed fixes the random stream, which
// keeps tests reproducible.
func New(cfg Config, seed uint64) *Sim {
	if cfg.Max <= 0 {
		cfg.Max = 3
	}
	if cfg.Fade <= 0 {
		cfg.Fade = 1.2
	}
	return &Sim{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed)),
	}
}

// Balls returns the live agents.
func (s *Sim) Balls() []*Ball {
	return s.balls
}

// Spawn creates an agent on the panel described by slot, using its
// allowed region. The agent starts at the region's farthest-from-center
// boundary vertex, or a sampled interior point when that vertex lies in
// an exclusion zone. Returns nil when the simulation is full.
func (s *Sim) Spawn(slot Slot, region *constraint.Region, color [3]float32) *Ball {
	if len(s.balls) >= s.cfg.Max {
		return nil
	}

	pos := region.Farthest
	if !region.Contains(pos) {
		pos = region.Sample(s.rng)
	}

	heading := s.rng.Float32() * 2 * math.Pi
	speed := spawnSpeedMin + s.rng.Float32()*(spawnSpeedMax-spawnSpeedMin)

	b := &Ball{
		Slot:   slot,
		Pos:    pos,
		Vel:    math.FromAngle(heading).Scale(speed),
		Color:  color,
		region: region,
		target: region.Sample(s.rng),
		wander: heading,
	}
	s.balls = append(s.balls, b)
	return b
}

// SetRegion swaps in a freshly computed region for every agent on the
// given panel slot. Called after panel geometry changes.
func (s *Sim) SetRegion(sphere, panel int, region *constraint.Region) {
	for _, b := range s.balls {
		if b.Slot.Sphere == sphere && b.Slot.Panel == panel {
			b.region = region
		}
	}
}

// Invalidate drops every agent whose slot belongs to a generation older
// than gen. The panels they referenced no longer exist.
func (s *Sim) Invalidate(gen int) {
	kept := s.balls[:0]
	for _, b := range s.balls {
		if b.Slot.Generation == gen {
			kept = append(kept, b)
		}
	}
	s.balls = kept
}

// FadeOutAll starts a fade-out on every agent; each is removed once
// fully transparent.
func (s *Sim) FadeOutAll() {
	for _, b := range s.balls {
		b.dying = true
	}
}

// Clear removes all agents immediately.
func (s *Sim) Clear() {
	s.balls = nil
}

// Update advances every agent by dt seconds.
func (s *Sim) Update(dt float32) {
	kept := s.balls[:0]
	for _, b := range s.balls {
		s.step(b, dt)
		if b.dying && b.Alpha <= 0 {
			continue
		}
		kept = append(kept, b)
	}
	s.balls = kept
}

func (s *Sim) step(b *Ball, dt float32) {
	b.age += dt
	if b.dying {
		b.Alpha = math.Clamp01(b.Alpha - dt/s.cfg.Fade)
	} else {
		b.Alpha = math.Smoothstep(0, 1, b.age/s.cfg.Fade)
	}

	// Retarget when close, or occasionally at random so motion never
	// settles into a fixed orbit.
	if b.Pos.Distance(b.target) < retargetDist || s.rng.Float32() < retargetProb {
		b.target = b.region.Sample(s.rng)
	}

	b.wander += (s.rng.Float32()*2 - 1) * wanderJitter

	seek := b.target.Sub(b.Pos).Normalize()
	desired := seek.Scale(seekWeight).Add(math.FromAngle(b.wander).Scale(wanderWeight))

	blend := math.Clamp01(velBlend * dt)
	b.Vel = b.Vel.Lerp(desired, blend)
	b.Vel.X += (s.rng.Float32()*2 - 1) * velJitter
	b.Vel.Y += (s.rng.Float32()*2 - 1) * velJitter

	// Clamp speed.
	speed := b.Vel.Length()
	if speed > 0 {
		if speed < speedMin {
			b.Vel = b.Vel.Scale(speedMin / speed)
		} else if speed > speedMax {
			b.Vel = b.Vel.Scale(speedMax / speed)
		}
	} else {
		b.Vel = math.FromAngle(b.wander).Scale(speedMin)
	}

	candidate := b.Pos.Add(b.Vel.Scale(dt))
	if b.region.Contains(candidate) {
		b.Pos = candidate
		return
	}

	// Would leave the allowed region: steer inward and binary-search
	// the largest step that stays valid. The current position is valid
	// by induction, so the committed point always is too.
	inward := b.region.Centroid.Sub(b.Pos).Normalize()
	adjusted := b.Vel.Add(inward.Scale(inwardSteer))

	best := float32(0)
	lo, hi := float32(0), float32(1)
	for i := 0; i < containmentIter; i++ {
		mid := (lo + hi) / 2
		if b.region.Contains(b.Pos.Add(adjusted.Scale(mid * dt))) {
			best = mid
			lo = mid
		} else {
			hi = mid
		}
	}
	b.Pos = b.Pos.Add(adjusted.Scale(best * dt))
	b.Vel = adjusted.Scale(bounceDamping)
}
