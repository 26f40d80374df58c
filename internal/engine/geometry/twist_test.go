package geometry

import (
	"testing"

	"github.com/hollowmoon/gorefold/pkg/math"
)

func flatPanel() *Mesh {
	return BuildPanelMesh(Params{
		PanelCount: 9,
		Radius:     1.0,
		Unfold:     1,
		Mode:       ModeRectangular,
	})
}

func TestApplyTwistZeroAmountIsCopy(t *testing.T) {
	src := flatPanel()
	out := ApplyTwist(src, 0, 1.5)

	for i := range src.Vertices {
		if out.Vertices[i].Position != src.Vertices[i].Position {
			t.Fatalf("amount 0 should not move vertex %d", i)
		}
	}
}

func TestApplyTwistReturnsDistinctMesh(t *testing.T) {
	src := flatPanel()
	orig := src.Vertices[0].Position
	out := ApplyTwist(src, 0.5, 1.5)

	out.Vertices[0].Position = math.Vec3{X: 99}
	if src.Vertices[0].Position != orig {
		t.Error("mutating the twist result leaked into the source mesh")
	}
}

func TestApplyTwistAngleProportionalToHeight(t *testing.T) {
	src := flatPanel()
	turns := float32(1.0)
	amount := float32(0.25)
	out := ApplyTwist(src, amount, turns)

	minY, maxY := src.HeightExtent()
	extent := maxY - minY
	top := amount * turns * 2 * math.Pi

	for i, v := range src.Vertices {
		h := (v.Position.Y - minY) / extent
		want := v.Position.RotateY(top * h)
		got := out.Vertices[i].Position
		if math.Abs(got.X-want.X) > 1e-5 ||
			math.Abs(got.Y-want.Y) > 1e-5 ||
			math.Abs(got.Z-want.Z) > 1e-5 {
			t.Fatalf("vertex %d: got %v, want %v", i, got, want)
		}
	}

	// Bottom row must be unrotated.
	for i, v := range src.Vertices {
		if v.Position.Y == minY {
			if out.Vertices[i].Position != v.Position {
				t.Fatalf("bottom vertex %d moved", i)
			}
		}
	}
}

func TestApplyTwistPreservesHeight(t *testing.T) {
	src := flatPanel()
	out := ApplyTwist(src, 1, 2)
	for i := range src.Vertices {
		if math.Abs(out.Vertices[i].Position.Y-src.Vertices[i].Position.Y) > 1e-6 {
			t.Fatalf("twist changed the height of vertex %d", i)
		}
	}
}

func TestApplyTwistFlatExtentNoop(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: math.Vec3{X: 1}},
			{Position: math.Vec3{X: 2}},
			{Position: math.Vec3{X: 3}},
		},
		Indices:  []uint32{0, 1, 2},
		LatSteps: 1,
		LonSteps: 1,
	}
	out := ApplyTwist(m, 1, 1)
	for i := range m.Vertices {
		if out.Vertices[i].Position != m.Vertices[i].Position {
			t.Fatal("zero-height mesh should pass through untouched")
		}
	}
}
