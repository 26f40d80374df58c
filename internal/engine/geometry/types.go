// Package geometry builds gore panel meshes: lune-shaped sphere slices
// that interpolate between their spherical shape and a flattened strip.
package geometry

import (
	"fmt"

	"github.com/hollowmoon/gorefold/pkg/math"
)

// GridMode selects mesh resolution, triangulation, and flatten shape.
type GridMode int

const (
	// ModeRectangular is the default 16x8 grid with a fixed quad diagonal.
	ModeRectangular GridMode = iota
	// ModeMinimal is a 3x2 performance grid.
	ModeMinimal
	// ModeTriangular is a 20x10 grid with the quad diagonal alternating
	// in a checkerboard pattern.
	ModeTriangular
	// ModeRadial is a 12x24 grid whose flattened shape is a fan rather
	// than a straight strip.
	ModeRadial
)

// Steps returns the latitude and longitude subdivision counts for the mode.
func (g GridMode) Steps() (lat, lon int) {
	switch g {
	case ModeMinimal:
		return 3, 2
	case ModeTriangular:
		return 20, 10
	case ModeRadial:
		return 12, 24
	default:
		return 16, 8
	}
}

// Concavity returns the taper curvature constant for the mode. The
// minimal grid uses a sharper taper; all others share one value. These
// are visual constants, not derived quantities.
func (g GridMode) Concavity() float32 {
	if g == ModeMinimal {
		return 0.1
	}
	return 0.3
}

func (g GridMode) String() string {
	switch g {
	case ModeRectangular:
		return "rectangular"
	case ModeMinimal:
		return "minimal"
	case ModeTriangular:
		return "triangular"
	case ModeRadial:
		return "radial"
	default:
		return fmt.Sprintf("GridMode(%d)", int(g))
	}
}

// ParseMode converts a config string to a GridMode.
func ParseMode(s string) (GridMode, error) {
	switch s {
	case "rectangular", "":
		return ModeRectangular, nil
	case "minimal":
		return ModeMinimal, nil
	case "triangular":
		return ModeTriangular, nil
	case "radial":
		return ModeRadial, nil
	default:
		return ModeRectangular, fmt.Errorf("unknown grid mode %q", s)
	}
}

// Vertex is a mesh vertex with position and normal in panel-local space.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds a gore panel's triangle mesh. The vertex grid is
// (lat+1)x(lon+1) for the mode's step counts; the count never changes
// for a fixed mode, which is what allows in-place position updates.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	LatSteps int
	LonSteps int
	Mode     GridMode
}

// VertexCount returns the number of vertices a mesh of the given mode has.
func VertexCount(mode GridMode) int {
	lat, lon := mode.Steps()
	return (lat + 1) * (lon + 1)
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		LatSteps: m.LatSteps,
		LonSteps: m.LonSteps,
		Mode:     m.Mode,
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Indices, m.Indices)
	return out
}

// HeightExtent returns the min and max Y over all vertices.
func (m *Mesh) HeightExtent() (minY, maxY float32) {
	if len(m.Vertices) == 0 {
		return 0, 0
	}
	minY = m.Vertices[0].Position.Y
	maxY = minY
	for i := 1; i < len(m.Vertices); i++ {
		y := m.Vertices[i].Position.Y
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return minY, maxY
}

// RecomputeNormals rebuilds per-vertex normals by accumulating face
// normals over every triangle and normalizing the sums. Degenerate
// vertices fall back to +Z.
func (m *Mesh) RecomputeNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math.Vec3{}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		m.Vertices[m.Indices[i]].Normal = m.Vertices[m.Indices[i]].Normal.Add(n)
		m.Vertices[m.Indices[i+1]].Normal = m.Vertices[m.Indices[i+1]].Normal.Add(n)
		m.Vertices[m.Indices[i+2]].Normal = m.Vertices[m.Indices[i+2]].Normal.Add(n)
	}
	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		if n.Length() < 1e-8 {
			m.Vertices[i].Normal = math.Vec3{Z: 1}
			continue
		}
		m.Vertices[i].Normal = n.Normalize()
	}
}

// BoundaryPositions returns the perimeter vertices of the grid in
// counter-clockwise order: bottom row, right column, top row reversed,
// left column reversed. Corners appear once.
func (m *Mesh) BoundaryPositions() []math.Vec3 {
	cols := m.LonSteps + 1
	rows := m.LatSteps + 1
	at := func(lat, lon int) math.Vec3 {
		return m.Vertices[lat*cols+lon].Position
	}

	out := make([]math.Vec3, 0, 2*cols+2*rows-4)
	for lon := 0; lon < cols; lon++ {
		out = append(out, at(0, lon))
	}
	for lat := 1; lat < rows; lat++ {
		out = append(out, at(lat, cols-1))
	}
	for lon := cols - 2; lon >= 0; lon-- {
		out = append(out, at(rows-1, lon))
	}
	for lat := rows - 2; lat >= 1; lat-- {
		out = append(out, at(lat, 0))
	}
	return out
}
