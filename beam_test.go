package spotlight

import (
	"math"
	"testing"
)

func resolvedRegion(i int, cx, cy, r float64) *Region {
	return &Region{Index: i, Center: Vec2{cx, cy}, Radius: r}
}

func newTestBeam() *Beam {
	return NewBeam(DefaultEasePos, DefaultEaseRadiusUp, DefaultEaseRadiusDown)
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestBeamActivateSnapsFromHidden(t *testing.T) {
	b := newTestBeam()
	b.Reset(350, 250)
	r := resolvedRegion(0, 200, 150, 90)

	b.Activate(r, Vec2{210, 160})
	if b.X != 200 || b.Y != 150 {
		t.Errorf("position = (%v, %v), want snap to (200, 150)", b.X, b.Y)
	}
	if !approxEqual(b.TargetRadius, 99, 1e-9) {
		t.Errorf("TargetRadius = %v, want 99", b.TargetRadius)
	}
	if !b.Visible {
		t.Error("beam should be visible")
	}
	if b.Radius != 0 {
		t.Errorf("Radius = %v, want 0 until the first tick", b.Radius)
	}
	if b.Active() != r {
		t.Error("Active should be the activated region")
	}
}

func TestBeamActivateSnapsBetweenRegions(t *testing.T) {
	b := newTestBeam()
	b.Reset(350, 250)
	a := resolvedRegion(0, 200, 150, 90)
	c := resolvedRegion(1, 500, 300, 70)

	b.Activate(a, a.Center)
	for i := 0; i < 5; i++ {
		b.Tick()
	}
	b.Activate(c, Vec2{505, 300})
	if b.X != 500 || b.Y != 300 {
		t.Errorf("position = (%v, %v), want snap to (500, 300)", b.X, b.Y)
	}
	if !approxEqual(b.TargetRadius, 77, 1e-9) {
		t.Errorf("TargetRadius = %v, want 77", b.TargetRadius)
	}
}

func TestBeamActivateSameRegionKeepsPosition(t *testing.T) {
	b := newTestBeam()
	b.Reset(0, 0)
	r := resolvedRegion(0, 200, 150, 90)
	b.Activate(r, Vec2{220, 150})
	for i := 0; i < 60; i++ {
		b.Tick()
	}
	x, y := b.X, b.Y
	b.Activate(r, Vec2{180, 150})
	if b.X != x || b.Y != y {
		t.Errorf("re-activating the same region moved the beam to (%v, %v)", b.X, b.Y)
	}
	if p, ok := b.Pointer(); !ok || p != (Vec2{180, 150}) {
		t.Errorf("Pointer = %v %v, want {180 150} true", p, ok)
	}
}

func TestBeamFollowGate(t *testing.T) {
	b := newTestBeam()
	b.Reset(0, 0)
	r := resolvedRegion(0, 200, 150, 90)
	b.Activate(r, Vec2{220, 150})

	for i := 0; i < 200; i++ {
		b.Tick()
		if b.Radius <= r.Radius*FollowGate && (b.X != 200 || b.Y != 150) {
			t.Fatalf("tick %d: beam left the center at radius %v", i, b.Radius)
		}
	}
	// Follow point: pointer + (center - pointer) * damping.
	wantX := 220 + (200-220)*FollowDamping
	if !approxEqual(b.X, wantX, 1e-3) || !approxEqual(b.Y, 150, 1e-9) {
		t.Errorf("position = (%v, %v), want (%v, 150)", b.X, b.Y, wantX)
	}
	if b.Phase() != PhaseTracking {
		t.Errorf("Phase = %v, want tracking", b.Phase())
	}
}

func TestBeamOpensFasterThanItCloses(t *testing.T) {
	b := newTestBeam()
	b.Reset(0, 0)
	r := resolvedRegion(0, 200, 150, 90)
	b.Activate(r, r.Center)
	b.Tick()
	opened := b.Radius

	b.Radius = 99
	b.Deactivate()
	b.Tick()
	closed := 99 - b.Radius

	if !approxEqual(opened, 99*DefaultEaseRadiusUp, 1e-9) {
		t.Errorf("first opening step = %v, want %v", opened, 99*DefaultEaseRadiusUp)
	}
	if !approxEqual(closed, 99*DefaultEaseRadiusDown, 1e-9) {
		t.Errorf("first closing step = %v, want %v", closed, 99*DefaultEaseRadiusDown)
	}
}

func TestBeamDeactivateHidesWithinBound(t *testing.T) {
	b := newTestBeam()
	b.Reset(0, 0)
	r := resolvedRegion(0, 200, 150, 90)
	b.Activate(r, r.Center)
	b.Radius = 99
	b.Deactivate()

	if b.Phase() != PhaseDeactivating {
		t.Errorf("Phase = %v, want deactivating", b.Phase())
	}
	ticks := 0
	for b.Visible && ticks < 100 {
		b.Tick()
		ticks++
	}
	if b.Visible {
		t.Fatalf("beam still visible after %d ticks (radius %v)", ticks, b.Radius)
	}
	if b.Radius >= HideEpsilon {
		t.Errorf("Radius = %v, want < %v", b.Radius, HideEpsilon)
	}
	if b.Active() != nil {
		t.Error("Active should be cleared once hidden")
	}
	if b.Phase() != PhaseHidden {
		t.Errorf("Phase = %v, want hidden", b.Phase())
	}
}

func TestBeamReopenWhileClosing(t *testing.T) {
	b := newTestBeam()
	b.Reset(0, 0)
	r := resolvedRegion(0, 200, 150, 90)
	b.Activate(r, r.Center)
	b.Radius = 99
	b.Deactivate()
	for i := 0; i < 5; i++ {
		b.Tick()
	}
	radius := b.Radius
	b.Activate(r, r.Center)
	if b.Radius != radius {
		t.Errorf("Radius jumped from %v to %v on reactivation", radius, b.Radius)
	}
	if b.Phase() != PhaseActivating {
		t.Errorf("Phase = %v, want activating", b.Phase())
	}
}

func TestBeamPresentCentersWithoutFollow(t *testing.T) {
	b := newTestBeam()
	b.Reset(0, 0)
	r := resolvedRegion(0, 200, 150, 90)
	b.Present(r)
	for i := 0; i < 100; i++ {
		b.Tick()
	}
	if !approxEqual(b.X, 200, 1e-9) || !approxEqual(b.Y, 150, 1e-9) {
		t.Errorf("position = (%v, %v), want (200, 150)", b.X, b.Y)
	}
}

func TestBeamTickAtEquilibrium(t *testing.T) {
	b := newTestBeam()
	b.Reset(100, 100)
	b.Tick()
	if b.X != 100 || b.Y != 100 || b.Radius != 0 || b.Visible {
		t.Errorf("hidden beam changed on tick: %+v", b)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseHidden:       "hidden",
		PhaseActivating:   "activating",
		PhaseTracking:     "tracking",
		PhaseDeactivating: "deactivating",
		Phase(99):         "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
