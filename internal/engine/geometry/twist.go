package geometry

import "github.com/hollowmoon/gorefold/pkg/math"

// ApplyTwist rotates every vertex about the vertical axis by an angle
// proportional to its normalized height: zero at the bottom of the
// mesh, amount*turns full revolutions at the top. The input mesh is
// never mutated; callers always receive a fresh mesh, so the twisted
// copy can be handed to a renderer while the untwisted source keeps
// serving in-place updates.
func ApplyTwist(m *Mesh, amount, turns float32) *Mesh {
	out := m.Clone()
	if amount <= 0 {
		return out
	}

	minY, maxY := out.HeightExtent()
	extent := maxY - minY
	if extent < 1e-6 {
		return out
	}

	top := amount * turns * 2 * math.Pi
	for i := range out.Vertices {
		pos := out.Vertices[i].Position
		h := (pos.Y - minY) / extent
		out.Vertices[i].Position = pos.RotateY(top * h)
	}
	out.RecomputeNormals()
	return out
}
