package constraint

import (
	"math/rand/v2"

	"github.com/hollowmoon/gorefold/internal/engine/scene"
	"github.com/hollowmoon/gorefold/pkg/math"
)

const (
	sampleAttempts = 20
	probeCount     = 16
)

// Region is a panel's allowed 2D area: its boundary hull minus the
// exclusion polygons of smaller-sphere panels overlapping it.
// Recomputed whenever the panel's mesh is replaced or reshaped.
type Region struct {
	Hull       []math.Vec2
	Exclusions [][]math.Vec2
	Centroid   math.Vec2
	// Farthest is the boundary vertex farthest from the centroid; balls
	// spawn there so they enter from a panel tip.
	Farthest math.Vec2
}

// BoundaryPoints2D projects the panel's mesh perimeter into its local
// 2D constraint plane (the flattened x/y plane, z dropped).
func BoundaryPoints2D(p *scene.Panel) []math.Vec2 {
	border := p.Mesh.BoundaryPositions()
	out := make([]math.Vec2, len(border))
	for i, v := range border {
		out[i] = v.XY()
	}
	return out
}

// ComputeExclusions projects the boundary of every panel belonging to a
// strictly smaller sphere into panel's local frame and hulls it. Hulls
// with fewer than 3 vertices or no overlap with the panel's own hull
// are discarded.
func ComputeExclusions(panel *scene.Panel, all []*scene.Panel) [][]math.Vec2 {
	own := ComputeHull(BoundaryPoints2D(panel))

	var out [][]math.Vec2
	for _, other := range all {
		if other == panel || other.Radius >= panel.Radius {
			continue
		}

		border := other.Mesh.BoundaryPositions()
		pts := make([]math.Vec2, len(border))
		for i, v := range border {
			pts[i] = panel.WorldToLocal(other.LocalToWorld(v)).XY()
		}

		hull := ComputeHull(pts)
		if len(hull) < 3 {
			continue
		}
		if !polygonsOverlap(own, hull) {
			continue
		}
		out = append(out, hull)
	}
	return out
}

// polygonsOverlap is a cheap vertex-containment overlap test. It can
// miss edge-crossing-only intersections, which for these near-aligned
// panel projections do not occur.
func polygonsOverlap(a, b []math.Vec2) bool {
	for _, p := range b {
		if PointInPolygon(p, a) {
			return true
		}
	}
	for _, p := range a {
		if PointInPolygon(p, b) {
			return true
		}
	}
	return PointInPolygon(Centroid(b), a) || PointInPolygon(Centroid(a), b)
}

// NewRegion builds the allowed region for a panel against all panels.
func NewRegion(panel *scene.Panel, all []*scene.Panel) *Region {
	boundary := BoundaryPoints2D(panel)
	hull := ComputeHull(boundary)
	centroid := Centroid(hull)

	far := centroid
	best := float32(-1)
	for _, p := range boundary {
		if d := p.Distance(centroid); d > best {
			best = d
			far = p
		}
	}

	return &Region{
		Hull:       hull,
		Exclusions: ComputeExclusions(panel, all),
		Centroid:   centroid,
		Farthest:   far,
	}
}

// Contains reports whether pt lies in the allowed region.
func (r *Region) Contains(pt math.Vec2) bool {
	return IsValid(pt, r.Hull, r.Exclusions)
}

// SampleInterior picks a valid point in the allowed region. Up to 20
// attempts sample the triangle fan between the centroid and a random
// hull edge; on exhaustion 16 directions around the centroid are
// probed at a fixed radius; the final fallback is the centroid itself.
// It never fails, though the fallback may sit inside an exclusion when
// exclusions cover the whole hull.
func SampleInterior(rng *rand.Rand, hull []math.Vec2, exclusions [][]math.Vec2, centroid math.Vec2) math.Vec2 {
	n := len(hull)
	if n >= 3 {
		for attempt := 0; attempt < sampleAttempts; attempt++ {
			i := rng.IntN(n)
			a := hull[i]
			b := hull[(i+1)%n]

			u := rng.Float32()
			v := rng.Float32()
			if u+v > 1 {
				u = 1 - u
				v = 1 - v
			}
			pt := centroid.
				Add(a.Sub(centroid).Scale(u)).
				Add(b.Sub(centroid).Scale(v))
			if IsValid(pt, hull, exclusions) {
				return pt
			}
		}
	}

	radius := probeRadius(hull, centroid)
	for i := 0; i < probeCount; i++ {
		angle := 2 * math.Pi * float32(i) / probeCount
		pt := centroid.Add(math.FromAngle(angle).Scale(radius))
		if IsValid(pt, hull, exclusions) {
			return pt
		}
	}

	return centroid
}

// Sample draws a valid point from the region.
func (r *Region) Sample(rng *rand.Rand) math.Vec2 {
	return SampleInterior(rng, r.Hull, r.Exclusions, r.Centroid)
}

// probeRadius is a fraction of the hull circumradius, so direction
// probing lands well inside the boundary.
func probeRadius(hull []math.Vec2, centroid math.Vec2) float32 {
	best := float32(0.1)
	for _, p := range hull {
		if d := p.Distance(centroid); d > best {
			best = d
		}
	}
	return best * 0.3
}
