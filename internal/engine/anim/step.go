// Package anim drives the looping presentation: timed steps that
// unfold, re-wrap, and deform the gore panels, synchronized with a
// typed caption timeline and the ball simulation.
package anim

// Step is one phase of the looping animation. Exactly one step is
// active at a time; the cycle only leaves the two idle steps on an
// external trigger.
type Step int

const (
	// StepCirclesMove drops the three sphere circles into position.
	StepCirclesMove Step = iota
	// StepFormingGores crossfades circle outlines into gore outlines.
	StepFormingGores
	// StepUnwrapping unfolds the gores into flat strips.
	StepUnwrapping
	// StepUnwrappedIdle holds the flattened layout until StartWrap.
	StepUnwrappedIdle
	// StepWrapping folds the strips back onto the spheres.
	StepWrapping
	// StepDeformingGores merges the gores toward the eye configuration.
	StepDeformingGores
	// StepEyeIdle holds the eye until StartUnwrap.
	StepEyeIdle

	stepCount
)

func (s Step) String() string {
	switch s {
	case StepCirclesMove:
		return "circles-move"
	case StepFormingGores:
		return "forming-gores"
	case StepUnwrapping:
		return "unwrapping"
	case StepUnwrappedIdle:
		return "unwrapped-idle"
	case StepWrapping:
		return "wrapping"
	case StepDeformingGores:
		return "deforming-gores"
	case StepEyeIdle:
		return "eye-idle"
	default:
		return "unknown"
	}
}

// next returns the following step in the cycle.
func (s Step) next() Step {
	return Step((int(s) + 1) % int(stepCount))
}

// idle reports whether the step waits for an external trigger instead
// of a timer.
func (s Step) idle() bool {
	return s == StepUnwrappedIdle || s == StepEyeIdle
}

// Timings holds the configured step durations in seconds. The idle
// steps have no duration; they persist until triggered.
type Timings struct {
	CirclesMove    float32
	FormingGores   float32
	Unwrapping     float32
	Wrapping       float32
	DeformingGores float32
	TypeSpeed      float32 // caption characters per second
}

// duration returns the configured duration for a timed step, or 0 for
// the idle steps.
func (t Timings) duration(s Step) float32 {
	switch s {
	case StepCirclesMove:
		return t.CirclesMove
	case StepFormingGores:
		return t.FormingGores
	case StepUnwrapping:
		return t.Unwrapping
	case StepWrapping:
		return t.Wrapping
	case StepDeformingGores:
		return t.DeformingGores
	default:
		return 0
	}
}
