package geometry

import (
	"testing"

	"github.com/hollowmoon/gorefold/pkg/math"
)

func TestVertexCountPerMode(t *testing.T) {
	cases := []struct {
		mode GridMode
		want int
	}{
		{ModeRectangular, 17 * 9},
		{ModeMinimal, 4 * 3},
		{ModeTriangular, 21 * 11},
		{ModeRadial, 13 * 25},
	}

	for _, c := range cases {
		// Vertex count must not depend on progress, radius, or panel index.
		for _, unfold := range []float32{0, 0.33, 1} {
			m := BuildPanelMesh(Params{
				PanelIndex: 2,
				PanelCount: 9,
				Radius:     1.5 + unfold,
				Unfold:     unfold,
				Transition: unfold / 2,
				Mode:       c.mode,
			})
			if len(m.Vertices) != c.want {
				t.Errorf("%v at unfold=%v: %d vertices, want %d", c.mode, unfold, len(m.Vertices), c.want)
			}
			if len(m.Vertices) != VertexCount(c.mode) {
				t.Errorf("%v: VertexCount() disagrees with builder", c.mode)
			}
			lat, lon := c.mode.Steps()
			if len(m.Indices) != lat*lon*6 {
				t.Errorf("%v: %d indices, want %d", c.mode, len(m.Indices), lat*lon*6)
			}
		}
	}
}

func TestUnfoldZeroOnSphere(t *testing.T) {
	const radius = 2.2
	for _, mode := range []GridMode{ModeRectangular, ModeMinimal, ModeTriangular, ModeRadial} {
		m := BuildPanelMesh(Params{
			PanelIndex: 0,
			PanelCount: 9,
			Radius:     radius,
			Unfold:     0,
			Mode:       mode,
		})
		for i, v := range m.Vertices {
			r := v.Position.Length()
			if math.Abs(r-radius) > 1e-4 {
				t.Fatalf("%v vertex %d: |v| = %v, want %v", mode, i, r, radius)
			}
		}
	}
}

func TestUnfoldOnePlanar(t *testing.T) {
	for _, mode := range []GridMode{ModeRectangular, ModeMinimal, ModeTriangular} {
		m := BuildPanelMesh(Params{
			PanelIndex: 3,
			PanelCount: 9,
			Radius:     1.0,
			Unfold:     1,
			Mode:       mode,
		})
		for i, v := range m.Vertices {
			if math.Abs(v.Position.Z) > 1e-5 {
				t.Fatalf("%v vertex %d: z = %v, want 0", mode, i, v.Position.Z)
			}
		}
	}
}

func TestUnfoldClamped(t *testing.T) {
	a := BuildPanelMesh(Params{PanelCount: 9, Radius: 1, Unfold: 1, Mode: ModeRectangular})
	b := BuildPanelMesh(Params{PanelCount: 9, Radius: 1, Unfold: 1.3, Mode: ModeRectangular})
	for i := range a.Vertices {
		if a.Vertices[i].Position != b.Vertices[i].Position {
			t.Fatalf("unfold > 1 should clamp: vertex %d differs", i)
		}
	}
}

func TestUpdatePanelMeshInPlace(t *testing.T) {
	p := Params{PanelCount: 9, Radius: 1.5, Unfold: 0, Mode: ModeRectangular}
	m := BuildPanelMesh(p)
	before := &m.Vertices[0]

	p.Unfold = 0.75
	if !UpdatePanelMesh(m, p) {
		t.Fatal("same-mode update should succeed in place")
	}
	if before != &m.Vertices[0] {
		t.Error("in-place update reallocated the vertex slice")
	}

	p.Mode = ModeTriangular
	if UpdatePanelMesh(m, p) {
		t.Error("mode change must force a full rebuild")
	}
	if UpdatePanelMesh(nil, p) {
		t.Error("nil mesh must force a full rebuild")
	}
}

func TestPanelWidthBlend(t *testing.T) {
	w0 := PanelWidth(9, 0)
	if math.Abs(w0-2*math.Pi/9) > 1e-6 {
		t.Errorf("transition 0: width %v, want %v", w0, 2*math.Pi/9)
	}
	w1 := PanelWidth(9, 1)
	if math.Abs(w1-2*math.Pi/3) > 1e-6 {
		t.Errorf("transition 1: width %v, want %v", w1, 2*math.Pi/3)
	}
}

func TestPanelCenterAngleBlend(t *testing.T) {
	a0 := PanelCenterAngle(4, 9, 0)
	if math.Abs(a0-4*2*math.Pi/9) > 1e-6 {
		t.Errorf("transition 0: angle %v, want %v", a0, 4*2*math.Pi/9)
	}
	a1 := PanelCenterAngle(4, 9, 1)
	if math.Abs(a1-2*math.Pi/3) > 1e-6 {
		t.Errorf("transition 1: panel 4 should land on slot 1, got %v", a1)
	}
}

func TestTriangularCheckerboard(t *testing.T) {
	m := BuildPanelMesh(Params{PanelCount: 9, Radius: 1, Mode: ModeTriangular})
	cols := uint32(m.LonSteps + 1)

	// First quad (lat 0, lon 0): fixed diagonal.
	if m.Indices[0] != 0 || m.Indices[1] != cols || m.Indices[2] != 1 {
		t.Errorf("quad (0,0) diagonal: got %v", m.Indices[:6])
	}
	// Second quad (lat 0, lon 1): flipped diagonal.
	if m.Indices[6] != 1 || m.Indices[7] != cols+1 || m.Indices[8] != cols+2 {
		t.Errorf("quad (0,1) should flip its diagonal: got %v", m.Indices[6:12])
	}
}

func TestBoundaryPositions(t *testing.T) {
	m := BuildPanelMesh(Params{PanelCount: 9, Radius: 1, Unfold: 1, Mode: ModeMinimal})
	b := m.BoundaryPositions()

	lat, lon := ModeMinimal.Steps()
	want := 2*(lat+1) + 2*(lon+1) - 4
	if len(b) != want {
		t.Fatalf("boundary has %d points, want %d", len(b), want)
	}

	// No interior duplicates: every boundary point should be unique.
	seen := map[math.Vec3]bool{}
	for _, p := range b {
		if seen[p] {
			t.Fatalf("duplicate boundary point %v", p)
		}
		seen[p] = true
	}
}

func TestNormalsUnitLength(t *testing.T) {
	m := BuildPanelMesh(Params{PanelCount: 9, Radius: 2, Unfold: 0.4, Mode: ModeRectangular})
	for i, v := range m.Vertices {
		l := v.Normal.Length()
		if l < 0.999 || l > 1.001 {
			t.Fatalf("vertex %d normal length %v, want ~1", i, l)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"rectangular", "minimal", "triangular", "radial"} {
		mode, err := ParseMode(s)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", s, err)
		}
		if mode.String() != s {
			t.Errorf("ParseMode(%q).String() = %q", s, mode.String())
		}
	}
	if _, err := ParseMode("hexagonal"); err == nil {
		t.Error("unknown mode should error")
	}
}
