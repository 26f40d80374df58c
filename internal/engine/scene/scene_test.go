package scene

import (
	"testing"

	"github.com/hollowmoon/gorefold/internal/engine/geometry"
	"github.com/hollowmoon/gorefold/pkg/math"
)

func testSpecs() []SphereSpec {
	return []SphereSpec{
		{Radius: 2.2, RestY: 0},
		{Radius: 1.55, RestY: -0.65},
		{Radius: 1.0, RestY: -1.2},
	}
}

func TestRebuildCreatesPanels(t *testing.T) {
	s := New(testSpecs())
	s.Rebuild(9, geometry.ModeRectangular, 0, 0)

	if len(s.Panels()) != 27 {
		t.Fatalf("expected 3*9 panels, got %d", len(s.Panels()))
	}
	p := s.PanelAt(1, 4)
	if p == nil {
		t.Fatal("PanelAt(1,4) returned nil")
	}
	if p.Sphere != 1 || p.Index != 4 {
		t.Errorf("panel identity mismatch: sphere=%d index=%d", p.Sphere, p.Index)
	}
	if p.Radius != 1.55 {
		t.Errorf("panel radius = %v, want 1.55", p.Radius)
	}
	if len(p.Mesh.Vertices) != geometry.VertexCount(geometry.ModeRectangular) {
		t.Error("panel mesh has wrong vertex count")
	}
}

func TestRebuildDisposesBeforeReplacing(t *testing.T) {
	s := New(testSpecs())

	var disposed [][2]int
	s.SetDisposeFunc(func(sphere, panel int) {
		disposed = append(disposed, [2]int{sphere, panel})
	})

	s.Rebuild(3, geometry.ModeMinimal, 0, 0)
	if len(disposed) != 0 {
		t.Errorf("first rebuild disposed %d empty slots", len(disposed))
	}

	s.Rebuild(2, geometry.ModeMinimal, 0, 0)
	if len(disposed) != 9 {
		t.Errorf("second rebuild should dispose all 3*3 old slots, got %d", len(disposed))
	}

	gen := s.Generation
	s.Rebuild(2, geometry.ModeMinimal, 0, 0)
	if s.Generation != gen+1 {
		t.Error("rebuild must bump the generation counter")
	}
}

func TestNilDisposeFuncTolerated(t *testing.T) {
	s := New(testSpecs())
	s.Rebuild(3, geometry.ModeMinimal, 0, 0)
	// No dispose func registered: replacing panels must not panic.
	s.Rebuild(3, geometry.ModeMinimal, 0, 0)
}

func TestUpdateMeshesFastPathKeepsMesh(t *testing.T) {
	s := New(testSpecs())
	s.Rebuild(9, geometry.ModeRectangular, 0, 0)

	p := s.PanelAt(0, 0)
	mesh := p.Mesh
	p.Dirty = false

	s.UpdateMeshes(0.5, 0)
	if p.Mesh != mesh {
		t.Error("same-mode update should reuse the mesh allocation")
	}
	if !p.Dirty {
		t.Error("update must mark the panel dirty for the renderer")
	}
}

func TestUpdateMeshesSlowPathOnModeChange(t *testing.T) {
	s := New(testSpecs())
	s.Rebuild(9, geometry.ModeRectangular, 1, 0)

	var disposed int
	s.SetDisposeFunc(func(sphere, panel int) { disposed++ })

	p := s.PanelAt(0, 0)
	mesh := p.Mesh

	s.SetMode(geometry.ModeRadial)
	s.UpdateMeshes(1, 0)

	if p.Mesh == mesh {
		t.Error("mode change should allocate a new mesh")
	}
	if len(p.Mesh.Vertices) != geometry.VertexCount(geometry.ModeRadial) {
		t.Error("new mesh has wrong topology")
	}
	if disposed != 27 {
		t.Errorf("slow path should dispose each replaced slot, got %d", disposed)
	}
}

func TestPanelTransformRoundTrip(t *testing.T) {
	p := &Panel{
		Position: math.Vec3{Y: -1.2},
		Yaw:      0.7,
	}
	local := math.Vec3{X: 0.3, Y: 0.5, Z: 1.1}
	world := p.LocalToWorld(local)
	back := p.WorldToLocal(world)
	if math.Abs(back.X-local.X) > 1e-5 ||
		math.Abs(back.Y-local.Y) > 1e-5 ||
		math.Abs(back.Z-local.Z) > 1e-5 {
		t.Errorf("round trip %v -> %v -> %v", local, world, back)
	}

	// Matrix form must agree with the explicit transform.
	mw := p.Transform().TransformPoint(local)
	if math.Abs(mw.X-world.X) > 1e-5 ||
		math.Abs(mw.Y-world.Y) > 1e-5 ||
		math.Abs(mw.Z-world.Z) > 1e-5 {
		t.Errorf("Transform() matrix disagrees: %v vs %v", mw, world)
	}
}

func TestPanelAtOutOfRange(t *testing.T) {
	s := New(testSpecs())
	s.Rebuild(3, geometry.ModeMinimal, 0, 0)

	if s.PanelAt(-1, 0) != nil || s.PanelAt(3, 0) != nil ||
		s.PanelAt(0, -1) != nil || s.PanelAt(0, 3) != nil {
		t.Error("out-of-range PanelAt should return nil")
	}
}
