// Package constraint computes the 2D regions agents may occupy on a
// gore panel: the convex hull of the panel's boundary minus the
// footprints of smaller-sphere panels overlapping it.
package constraint

import (
	"sort"

	"github.com/hollowmoon/gorefold/pkg/math"
)

// edgeEpsilon is the tolerance for treating a point on a polygon edge
// as inside.
const edgeEpsilon = 1e-5

// ComputeHull returns the convex hull of the points via the monotone
// chain construction. When the hull degenerates (fewer than 3 distinct
// extreme points) it falls back to a small axis-aligned square around
// the input centroid so downstream sampling always has an area to work
// with.
func ComputeHull(points []math.Vec2) []math.Vec2 {
	if len(points) < 3 {
		return fallbackSquare(points)
	}

	pts := make([]math.Vec2, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	// Lower then upper chain; non-left turns are discarded.
	var lower []math.Vec2
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []math.Vec2
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain's last point is the other chain's first.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return fallbackSquare(points)
	}
	return hull
}

// cross returns the z component of (b-a) x (c-a).
func cross(a, b, c math.Vec2) float32 {
	return b.Sub(a).Cross(c.Sub(a))
}

// fallbackSquare returns a square centered on the point centroid with
// half-size equal to the largest centroid distance (at least 0.1).
func fallbackSquare(points []math.Vec2) []math.Vec2 {
	c := Centroid(points)
	r := float32(0.1)
	for _, p := range points {
		if d := p.Distance(c); d > r {
			r = d
		}
	}
	return []math.Vec2{
		{X: c.X - r, Y: c.Y - r},
		{X: c.X + r, Y: c.Y - r},
		{X: c.X + r, Y: c.Y + r},
		{X: c.X - r, Y: c.Y + r},
	}
}

// Centroid returns the mean of the points, or the origin for no points.
func Centroid(points []math.Vec2) math.Vec2 {
	if len(points) == 0 {
		return math.Vec2{}
	}
	var sum math.Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(points)))
}

// PointInPolygon reports whether pt is inside the polygon by ray
// casting. Points within edgeEpsilon of an edge count as inside.
func PointInPolygon(pt math.Vec2, poly []math.Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	for i := 0; i < n; i++ {
		if distToSegment(pt, poly[i], poly[(i+1)%n]) <= edgeEpsilon {
			return true
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			x := pj.X + (pt.Y-pj.Y)/(pi.Y-pj.Y)*(pi.X-pj.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// distToSegment returns the distance from pt to segment ab.
func distToSegment(pt, a, b math.Vec2) float32 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return pt.Distance(a)
	}
	t := math.Clamp01(pt.Sub(a).Dot(ab) / l2)
	return pt.Distance(a.Add(ab.Scale(t)))
}

// IsValid reports whether pt lies inside the boundary hull and outside
// every exclusion polygon.
func IsValid(pt math.Vec2, hull []math.Vec2, exclusions [][]math.Vec2) bool {
	if !PointInPolygon(pt, hull) {
		return false
	}
	for _, ex := range exclusions {
		if PointInPolygon(pt, ex) {
			return false
		}
	}
	return true
}
