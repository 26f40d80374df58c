package constraint

import (
	"testing"

	"github.com/hollowmoon/gorefold/pkg/math"
)

func square(cx, cy, half float32) []math.Vec2 {
	return []math.Vec2{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
}

func TestComputeHullSquare(t *testing.T) {
	// Corners plus interior and edge points; hull must be exactly the corners.
	pts := []math.Vec2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0}, {X: 0, Y: 0.5}, {X: 0.25, Y: 0.75},
	}
	hull := ComputeHull(pts)
	if len(hull) != 4 {
		t.Fatalf("square hull has %d points, want 4", len(hull))
	}

	want := map[math.Vec2]bool{
		{X: 0, Y: 0}: true, {X: 1, Y: 0}: true, {X: 1, Y: 1}: true, {X: 0, Y: 1}: true,
	}
	for _, p := range hull {
		if !want[p] {
			t.Errorf("unexpected hull point %v", p)
		}
		delete(want, p)
	}
	if len(want) != 0 {
		t.Errorf("missing hull corners: %v", want)
	}
}

func TestComputeHullDegenerateFallback(t *testing.T) {
	// Collinear points cannot form an area; expect the square fallback.
	pts := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	hull := ComputeHull(pts)
	if len(hull) != 4 {
		t.Fatalf("fallback hull has %d points, want 4", len(hull))
	}
	c := Centroid(pts)
	if !PointInPolygon(c, hull) {
		t.Error("fallback square must contain the point centroid")
	}
	// Half-size is the max centroid distance (1.5 here).
	for _, p := range hull {
		if math.Abs(math.Abs(p.X-c.X)-1.5) > 1e-5 {
			t.Errorf("fallback corner %v not at expected offset", p)
		}
	}
}

func TestComputeHullTooFewPoints(t *testing.T) {
	hull := ComputeHull([]math.Vec2{{X: 2, Y: 3}})
	if len(hull) != 4 {
		t.Fatalf("single point should yield fallback square, got %d points", len(hull))
	}
	if !PointInPolygon(math.Vec2{X: 2, Y: 3}, hull) {
		t.Error("fallback square must contain the input point")
	}
}

func TestPointInPolygon(t *testing.T) {
	poly := square(0, 0, 1)

	cases := []struct {
		pt   math.Vec2
		want bool
	}{
		{math.Vec2{X: 0, Y: 0}, true},
		{math.Vec2{X: 0.99, Y: 0.99}, true},
		{math.Vec2{X: 1.01, Y: 0}, false},
		{math.Vec2{X: 0, Y: -1.5}, false},
		{math.Vec2{X: 1, Y: 0}, true}, // on edge counts as inside
		{math.Vec2{X: 1, Y: 1}, true}, // corner counts as inside
	}
	for _, c := range cases {
		if got := PointInPolygon(c.pt, poly); got != c.want {
			t.Errorf("PointInPolygon(%v) = %v, want %v", c.pt, got, c.want)
		}
	}
}

func TestIsValidRespectsExclusions(t *testing.T) {
	hull := square(0, 0, 2)
	exclusions := [][]math.Vec2{square(0, 0, 0.5)}

	// Hull centroid with no exclusions is valid.
	if !IsValid(math.Vec2{}, hull, nil) {
		t.Error("centroid should be valid without exclusions")
	}
	// Strictly inside an exclusion is invalid even though inside the hull.
	if IsValid(math.Vec2{X: 0.1, Y: 0.1}, hull, exclusions) {
		t.Error("point inside exclusion should be invalid")
	}
	// Inside hull, outside exclusion: valid.
	if !IsValid(math.Vec2{X: 1.5, Y: 1.5}, hull, exclusions) {
		t.Error("point outside exclusion should be valid")
	}
	// Outside hull entirely: invalid.
	if IsValid(math.Vec2{X: 3, Y: 0}, hull, exclusions) {
		t.Error("point outside hull should be invalid")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid(square(1, 2, 1))
	if math.Abs(got.X-1) > 1e-6 || math.Abs(got.Y-2) > 1e-6 {
		t.Errorf("Centroid = %v, want (1,2)", got)
	}
	if (Centroid(nil) != math.Vec2{}) {
		t.Error("empty centroid should be the origin")
	}
}
