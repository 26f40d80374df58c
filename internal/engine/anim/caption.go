package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/hollowmoon/gorefold/pkg/math"
)

// Default captions per step. The caption renderer is external; the
// machine only emits text and typing progress.
var defaultCaptions = map[Step]string{
	StepCirclesMove:    "three spheres, nested",
	StepFormingGores:   "sliced into gores",
	StepUnwrapping:     "unwrapped flat",
	StepUnwrappedIdle:  "a map of a sphere",
	StepWrapping:       "wrapped again",
	StepDeformingGores: "folding inward",
	StepEyeIdle:        "the eye",
}

// backspaceFactor: erasing runs faster than typing.
const backspaceFactor = 2.5

// glowPeriod is the full pulse cycle of the caption glow, in seconds.
const glowPeriod = float32(2.4)

// CaptionState is the per-frame caption output consumed by the
// external caption renderer.
type CaptionState struct {
	Text        string
	Typed       int     // characters currently shown
	Progress    float32 // typed fraction of the current text, 0..1
	Backspacing bool
	Glow        float32 // pulse value, 0..1
}

// captionTimeline types one caption per step, backspacing the previous
// caption before typing the next.
type captionTimeline struct {
	typeSpeed float32
	captions  map[Step]string

	current string  // text being typed or shown
	pending string  // queued while backspacing
	shown   float32 // characters visible, fractional
	erasing bool

	glow    *gween.Tween
	glowUp  bool
	glowVal float32
}

func newCaptionTimeline(typeSpeed float32) *captionTimeline {
	if typeSpeed <= 0 {
		typeSpeed = 18
	}
	return &captionTimeline{
		typeSpeed: typeSpeed,
		captions:  defaultCaptions,
		glow:      gween.New(0, 1, glowPeriod/2, ease.InOutSine),
		glowUp:    true,
	}
}

// setStep queues the caption for the given step. The visible caption
// is backspaced first unless nothing is shown yet.
func (c *captionTimeline) setStep(s Step) {
	text := c.captions[s]
	if text == c.current && !c.erasing {
		return
	}
	if c.shown > 0 {
		c.pending = text
		c.erasing = true
		return
	}
	c.current = text
	c.shown = 0
	c.erasing = false
}

func (c *captionTimeline) update(dt float32) {
	if c.erasing {
		c.shown -= dt * c.typeSpeed * backspaceFactor
		if c.shown <= 0 {
			c.shown = 0
			c.erasing = false
			c.current = c.pending
			c.pending = ""
		}
	} else if c.shown < float32(len(c.current)) {
		c.shown += dt * c.typeSpeed
		if max := float32(len(c.current)); c.shown > max {
			c.shown = max
		}
	}

	// Glow ping-pongs between 0 and 1.
	v, done := c.glow.Update(dt)
	c.glowVal = v
	if done {
		if c.glowUp {
			c.glow = gween.New(1, 0, glowPeriod/2, ease.InOutSine)
		} else {
			c.glow = gween.New(0, 1, glowPeriod/2, ease.InOutSine)
		}
		c.glowUp = !c.glowUp
	}
}

func (c *captionTimeline) state() CaptionState {
	typed := int(c.shown)
	if typed > len(c.current) {
		typed = len(c.current)
	}
	progress := float32(0)
	if len(c.current) > 0 {
		progress = math.Clamp01(c.shown / float32(len(c.current)))
	}
	return CaptionState{
		Text:        c.current,
		Typed:       typed,
		Progress:    progress,
		Backspacing: c.erasing,
		Glow:        c.glowVal,
	}
}

// typeTime returns how long typing the caption for a step takes.
func (c *captionTimeline) typeTime(s Step) float32 {
	return float32(len(c.captions[s])) / c.typeSpeed
}

// HoldDuration derives how long an idle step should hold its caption
// before an automated trigger, so the silent gap before the next
// caption matches the average gap the timed steps produce. Nothing is
// hardcoded: the gaps fall out of the configured durations and type
// speed.
func (c *captionTimeline) holdDuration(t Timings, s Step) float32 {
	timed := []Step{StepCirclesMove, StepFormingGores, StepUnwrapping, StepWrapping, StepDeformingGores}
	var gapSum float32
	var n int
	for _, ts := range timed {
		if gap := t.duration(ts) - c.typeTime(ts); gap > 0 {
			gapSum += gap
			n++
		}
	}
	avgGap := float32(0)
	if n > 0 {
		avgGap = gapSum / float32(n)
	}
	return c.typeTime(s) + avgGap
}
