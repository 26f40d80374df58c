package geometry

import (
	"github.com/chewxy/math32"

	"github.com/hollowmoon/gorefold/pkg/math"
)

// Params describes one gore panel build request. Unfold and Transition
// are clamped to [0,1] by the builder.
type Params struct {
	PanelIndex int
	PanelCount int
	Radius     float32
	Unfold     float32 // 0 = on the sphere, 1 = fully flattened
	Transition float32 // 0 = PanelCount equal slices, 1 = fixed 3-slice layout
	Mode       GridMode
}

// PanelWidth returns the panel's angular width in radians, blending the
// N-equal-slices layout toward the fixed 3-slice layout by transition.
func PanelWidth(count int, transition float32) float32 {
	if count < 1 {
		count = 1
	}
	wn := 2 * math.Pi / float32(count)
	w3 := 2 * math.Pi / 3
	return math.Lerp(wn, w3, math.Clamp01(transition))
}

// PanelCenterAngle returns the panel's world yaw, blending each panel
// toward its slot in the 3-slice layout (panel i maps to slot i mod 3).
func PanelCenterAngle(index, count int, transition float32) float32 {
	if count < 1 {
		count = 1
	}
	an := float32(index) * 2 * math.Pi / float32(count)
	a3 := float32(index%3) * 2 * math.Pi / 3
	return math.Lerp(an, a3, math.Clamp01(transition))
}

// BuildPanelMesh builds a gore panel mesh in panel-local space. The
// panel is centered on longitude zero; its world yaw lives in the
// owning panel's transform. Vertex count depends only on p.Mode.
func BuildPanelMesh(p Params) *Mesh {
	lat, lon := p.Mode.Steps()
	m := &Mesh{
		Vertices: make([]Vertex, (lat+1)*(lon+1)),
		Indices:  buildIndices(lat, lon, p.Mode),
		LatSteps: lat,
		LonSteps: lon,
		Mode:     p.Mode,
	}
	fillPositions(m, p)
	m.RecomputeNormals()
	return m
}

// UpdatePanelMesh refreshes vertex positions and normals in place when
// the mesh topology matches the request. Returns false when the caller
// must allocate a fresh mesh instead (mode changed or mesh missing).
func UpdatePanelMesh(m *Mesh, p Params) bool {
	if m == nil || m.Mode != p.Mode {
		return false
	}
	lat, lon := p.Mode.Steps()
	if len(m.Vertices) != (lat+1)*(lon+1) {
		return false
	}
	fillPositions(m, p)
	m.RecomputeNormals()
	return true
}

// fillPositions computes every grid vertex as the interpolation between
// its spherical position and its flattened position.
func fillPositions(m *Mesh, p Params) {
	unfold := math.Clamp01(p.Unfold)
	width := PanelWidth(p.PanelCount, p.Transition)
	concavity := p.Mode.Concavity()
	halfArc := p.Radius * math.Pi / 2

	i := 0
	for latI := 0; latI <= m.LatSteps; latI++ {
		theta := -math.Pi/2 + math.Pi*float32(latI)/float32(m.LatSteps)
		cosT := math32.Cos(theta)
		// Gore strips taper with the cosine of the latitude; concavity
		// keeps the tips from pinching to a point.
		taper := (1-concavity)*cosT + concavity

		for lonI := 0; lonI <= m.LonSteps; lonI++ {
			phi := (float32(lonI)/float32(m.LonSteps) - 0.5) * width

			sphere := math.Vec3{
				X: p.Radius * cosT * math32.Sin(phi),
				Y: p.Radius * math32.Sin(theta),
				Z: p.Radius * cosT * math32.Cos(phi),
			}

			var flat math.Vec3
			if m.Mode == ModeRadial {
				// Fan: latitude becomes distance from the fan apex,
				// longitude becomes angle around it.
				fanAngle := phi * taper
				rho := p.Radius * (theta + math.Pi/2)
				flat = math.Vec3{
					X: rho * math32.Sin(fanAngle),
					Y: rho*math32.Cos(fanAngle) - halfArc,
				}
			} else {
				flat = math.Vec3{
					X: p.Radius * phi * taper,
					Y: p.Radius * theta,
				}
			}

			m.Vertices[i].Position = sphere.Lerp(flat, unfold)
			i++
		}
	}
}

// buildIndices triangulates the vertex grid. The triangular mode
// alternates the quad diagonal in a checkerboard; every other mode
// splits each quad along the same diagonal.
func buildIndices(lat, lon int, mode GridMode) []uint32 {
	cols := lon + 1
	out := make([]uint32, 0, lat*lon*6)
	for latI := 0; latI < lat; latI++ {
		for lonI := 0; lonI < lon; lonI++ {
			i00 := uint32(latI*cols + lonI)
			i10 := i00 + 1
			i01 := uint32((latI+1)*cols + lonI)
			i11 := i01 + 1

			if mode == ModeTriangular && (latI+lonI)%2 == 1 {
				out = append(out, i00, i01, i11, i00, i11, i10)
			} else {
				out = append(out, i00, i01, i10, i10, i01, i11)
			}
		}
	}
	return out
}
