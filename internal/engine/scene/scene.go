// Package scene owns the panel arena: three sphere groups, each holding
// an indexed slice of gore panels. Panels are addressed by (sphere,
// panel) index rather than long-lived pointers so agents and GPU
// caches can detect when a slot has been recycled.
package scene

import (
	"github.com/hollowmoon/gorefold/internal/engine/geometry"
	"github.com/hollowmoon/gorefold/pkg/math"
)

// Panel is one gore slice of a sphere.
type Panel struct {
	Sphere int // 0 outer, 1 mid, 2 inner
	Index  int
	Radius float32
	Color  [3]float32

	Mesh *geometry.Mesh

	// World placement: translation then yaw about Y.
	Position math.Vec3
	Yaw      float32

	// Overlay decoration state for the circle <-> gore crossfade.
	CircleAlpha float32
	GoreAlpha   float32

	// Dirty marks the mesh as changed since the renderer last uploaded it.
	Dirty bool
}

// LocalToWorld transforms a panel-local point into world space.
func (p *Panel) LocalToWorld(v math.Vec3) math.Vec3 {
	return v.RotateY(p.Yaw).Add(p.Position)
}

// WorldToLocal transforms a world-space point into the panel's local frame.
func (p *Panel) WorldToLocal(v math.Vec3) math.Vec3 {
	return v.Sub(p.Position).RotateY(-p.Yaw)
}

// Transform returns the panel's local-to-world matrix for rendering.
func (p *Panel) Transform() math.Mat4 {
	return math.Translate(p.Position.X, p.Position.Y, p.Position.Z).Mul(math.RotateY(p.Yaw))
}

// SphereGroup is the set of panels sharing one sphere.
type SphereGroup struct {
	Radius float32
	Color  [3]float32
	RestY  float32 // resting height when wrapped
	Y      float32 // current height
	Panels []*Panel
}

// DisposeFunc releases renderer-side resources for a panel slot before
// its mesh is replaced. Implementations must tolerate slots that were
// never uploaded or were already disposed.
type DisposeFunc func(sphere, panel int)

// Scene holds the three sphere groups, outer to inner.
type Scene struct {
	Groups     []*SphereGroup
	PanelCount int
	Mode       geometry.GridMode

	// Generation increments on every Rebuild; anything holding a panel
	// index from an older generation must drop it.
	Generation int

	dispose DisposeFunc
}

// SphereSpec configures one sphere group at construction.
type SphereSpec struct {
	Radius float32
	RestY  float32
	Color  [3]float32
}

// New creates a scene with the given spheres (outer to inner) and no panels.
// Call Rebuild to populate.
func New(specs []SphereSpec) *Scene {
	s := &Scene{Groups: make([]*SphereGroup, len(specs))}
	for i, spec := range specs {
		s.Groups[i] = &SphereGroup{
			Radius: spec.Radius,
			Color:  spec.Color,
			RestY:  spec.RestY,
			Y:      spec.RestY,
		}
	}
	return s
}

// SetDisposeFunc registers the renderer's resource-release hook. A nil
// func is allowed; disposal is then a no-op.
func (s *Scene) SetDisposeFunc(fn DisposeFunc) {
	s.dispose = fn
}

// Rebuild recreates every panel with the given count and grid mode.
// Old meshes are disposed before the new ones are installed.
func (s *Scene) Rebuild(panelCount int, mode geometry.GridMode, unfold, transition float32) {
	s.disposeAll()

	s.PanelCount = panelCount
	s.Mode = mode
	s.Generation++

	for si, g := range s.Groups {
		g.Panels = make([]*Panel, panelCount)
		for pi := 0; pi < panelCount; pi++ {
			g.Panels[pi] = &Panel{
				Sphere: si,
				Index:  pi,
				Radius: g.Radius,
				Color:  g.Color,
				Mesh: geometry.BuildPanelMesh(geometry.Params{
					PanelIndex: pi,
					PanelCount: panelCount,
					Radius:     g.Radius,
					Unfold:     unfold,
					Transition: transition,
					Mode:       mode,
				}),
				Position: math.Vec3{Y: g.Y},
				Yaw:      geometry.PanelCenterAngle(pi, panelCount, transition),
				Dirty:    true,
			}
		}
	}
}

// UpdateMeshes refreshes every panel's vertices in place for the given
// unfold and transition progress, and re-derives yaw and position. A
// panel whose topology no longer matches is rebuilt (slow path) after
// disposing its old resources.
func (s *Scene) UpdateMeshes(unfold, transition float32) {
	for si, g := range s.Groups {
		for pi, p := range g.Panels {
			params := geometry.Params{
				PanelIndex: pi,
				PanelCount: s.PanelCount,
				Radius:     g.Radius,
				Unfold:     unfold,
				Transition: transition,
				Mode:       s.Mode,
			}
			if !geometry.UpdatePanelMesh(p.Mesh, params) {
				s.disposeSlot(si, pi)
				p.Mesh = geometry.BuildPanelMesh(params)
			}
			p.Position = math.Vec3{Y: g.Y}
			p.Yaw = geometry.PanelCenterAngle(pi, s.PanelCount, transition)
			p.Dirty = true
		}
	}
}

// SetMode switches the grid topology. The next UpdateMeshes call takes
// the slow rebuild path for every panel.
func (s *Scene) SetMode(mode geometry.GridMode) {
	s.Mode = mode
}

// PanelAt returns the panel at (sphere, index), or nil when out of range.
func (s *Scene) PanelAt(sphere, index int) *Panel {
	if sphere < 0 || sphere >= len(s.Groups) {
		return nil
	}
	g := s.Groups[sphere]
	if index < 0 || index >= len(g.Panels) {
		return nil
	}
	return g.Panels[index]
}

// Panels returns all panels ordered outer sphere first, then by index.
func (s *Scene) Panels() []*Panel {
	var out []*Panel
	for _, g := range s.Groups {
		out = append(out, g.Panels...)
	}
	return out
}

func (s *Scene) disposeAll() {
	for si, g := range s.Groups {
		for pi := range g.Panels {
			s.disposeSlot(si, pi)
		}
	}
}

func (s *Scene) disposeSlot(sphere, panel int) {
	if s.dispose != nil {
		s.dispose(sphere, panel)
	}
}
