package anim

import (
	"testing"
)

func TestCaptionTypesAtConfiguredSpeed(t *testing.T) {
	c := newCaptionTimeline(10)
	c.setStep(StepCirclesMove)
	text := defaultCaptions[StepCirclesMove]

	c.update(1.0)
	st := c.state()
	if st.Text != text {
		t.Fatalf("text = %q, want %q", st.Text, text)
	}
	if st.Typed != 10 {
		t.Errorf("typed after 1s at 10 cps = %d, want 10", st.Typed)
	}

	c.update(10.0)
	st = c.state()
	if st.Typed != len(text) || st.Progress != 1 {
		t.Errorf("caption never finished: typed=%d progress=%v", st.Typed, st.Progress)
	}
}

func TestCaptionBackspacesBeforeNext(t *testing.T) {
	c := newCaptionTimeline(10)
	c.setStep(StepCirclesMove)
	c.update(10.0)

	c.setStep(StepFormingGores)
	st := c.state()
	if !st.Backspacing {
		t.Fatal("switching captions must backspace the visible one first")
	}
	if st.Text != defaultCaptions[StepCirclesMove] {
		t.Errorf("text during backspace = %q, want old caption", st.Text)
	}

	// Erasing runs at 2.5x the typing speed.
	erase := float32(len(defaultCaptions[StepCirclesMove])) / (10 * backspaceFactor)
	c.update(erase + 0.05)

	st = c.state()
	if st.Backspacing {
		t.Fatal("backspace should have completed")
	}
	if st.Text != defaultCaptions[StepFormingGores] {
		t.Errorf("text after backspace = %q, want next caption", st.Text)
	}

	c.update(10.0)
	if st = c.state(); st.Progress != 1 {
		t.Errorf("next caption never finished typing: progress=%v", st.Progress)
	}
}

func TestCaptionRepeatStepIsNoOp(t *testing.T) {
	c := newCaptionTimeline(10)
	c.setStep(StepCirclesMove)
	c.update(10.0)

	c.setStep(StepCirclesMove)
	if c.state().Backspacing {
		t.Error("re-entering the same caption must not backspace")
	}
}

func TestGlowStaysInRangeAndPulses(t *testing.T) {
	c := newCaptionTimeline(10)

	var min, max float32 = 1, 0
	for i := 0; i < 600; i++ {
		c.update(1.0 / 60.0)
		g := c.state().Glow
		if g < 0 || g > 1 {
			t.Fatalf("glow out of range: %v", g)
		}
		if g < min {
			min = g
		}
		if g > max {
			max = g
		}
	}
	if max-min < 0.5 {
		t.Errorf("glow barely moved over 10s: min=%v max=%v", min, max)
	}
}

func TestHoldDurationDerivedFromGaps(t *testing.T) {
	const speed = float32(20)
	c := newCaptionTimeline(speed)

	// Every timed step gets exactly its type time plus two seconds, so
	// the derived hold is the idle caption's type time plus two seconds.
	tt := func(s Step) float32 { return float32(len(defaultCaptions[s])) / speed }
	timings := Timings{
		CirclesMove:    tt(StepCirclesMove) + 2,
		FormingGores:   tt(StepFormingGores) + 2,
		Unwrapping:     tt(StepUnwrapping) + 2,
		Wrapping:       tt(StepWrapping) + 2,
		DeformingGores: tt(StepDeformingGores) + 2,
		TypeSpeed:      speed,
	}

	got := c.holdDuration(timings, StepUnwrappedIdle)
	want := tt(StepUnwrappedIdle) + 2
	if diff := got - want; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("hold = %v, want %v", got, want)
	}
}
