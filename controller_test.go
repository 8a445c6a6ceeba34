package spotlight

import "testing"

var tourPixels = []PixelRegion{
	{Name: "left", X: 200, Y: 150, R: 90},
	{Name: "right", X: 500, Y: 300, R: 70},
	{Name: "bottom", X: 350, Y: 400, R: 60},
}

func newTestController(w, h float64) (*Controller, *Overlay, *Beam) {
	o := NewOverlay(ColorBlack, DefaultEaseOverlay)
	b := newTestBeam()
	c := NewController(RegionsFromPixels(tourPixels, 700, 500), o, b, DefaultDimAlpha)
	if w > 0 && h > 0 {
		c.Resize(w, h)
	}
	return c, o, b
}

type recordingSink struct {
	events []SelectionEvent
}

func (s *recordingSink) EmitSelection(evt SelectionEvent) {
	s.events = append(s.events, evt)
}

func TestControllerResolvesRegions(t *testing.T) {
	c, _, b := newTestController(700, 500)
	r := c.Regions()[0]
	if !approxEqual(r.Center.X, 200, 1e-9) || !approxEqual(r.Center.Y, 150, 1e-9) || !approxEqual(r.Radius, 90, 1e-9) {
		t.Errorf("region 0 = %v r=%v, want (200, 150) r=90", r.Center, r.Radius)
	}
	if b.X != 350 || b.Y != 250 || b.Visible {
		t.Errorf("beam = (%v, %v) visible=%v, want hidden at (350, 250)", b.X, b.Y, b.Visible)
	}
}

func TestControllerPointerMoveActivates(t *testing.T) {
	c, o, b := newTestController(700, 500)

	hit := c.PointerMove(200, 150)
	if hit == nil || hit.Index != 0 {
		t.Fatalf("PointerMove hit = %v, want region 0", hit)
	}
	if !approxEqual(b.TargetRadius, 99, 1e-9) {
		t.Errorf("TargetRadius = %v, want 99", b.TargetRadius)
	}
	if !approxEqual(b.X, 200, 1e-9) || !approxEqual(b.Y, 150, 1e-9) {
		t.Errorf("beam = (%v, %v), want snapped to (200, 150)", b.X, b.Y)
	}
	if o.TargetAlpha != DefaultDimAlpha {
		t.Errorf("overlay TargetAlpha = %v, want %v", o.TargetAlpha, DefaultDimAlpha)
	}
	if c.Hovered() != hit {
		t.Error("Hovered should be the hit region")
	}
}

func TestControllerPointerMoveOutsideReleases(t *testing.T) {
	c, o, b := newTestController(700, 500)
	c.PointerMove(200, 150)

	if hit := c.PointerMove(0, 0); hit != nil {
		t.Fatalf("hit = %v, want nil", hit)
	}
	if o.TargetAlpha != 0 {
		t.Errorf("overlay TargetAlpha = %v, want 0", o.TargetAlpha)
	}
	if b.TargetRadius != 0 {
		t.Errorf("TargetRadius = %v, want 0", b.TargetRadius)
	}
	// The beam keeps its region while it closes.
	if b.Active() == nil {
		t.Error("Active should persist until the beam has closed")
	}
	if c.Hovered() != nil {
		t.Error("Hovered should be nil")
	}
}

func TestControllerPointerLeave(t *testing.T) {
	c, o, b := newTestController(700, 500)
	c.PointerMove(500, 300)

	var left int
	c.OnPointerLeave(func(ctx PointerContext) {
		if ctx.Type != EventPointerLeave {
			t.Errorf("Type = %v, want pointer-leave", ctx.Type)
		}
		left++
	})
	c.PointerLeave()
	if left != 1 {
		t.Errorf("leave handlers fired %d times, want 1", left)
	}
	if o.TargetAlpha != 0 || b.TargetRadius != 0 {
		t.Errorf("targets = %v/%v, want 0/0", o.TargetAlpha, b.TargetRadius)
	}
}

func TestControllerResize(t *testing.T) {
	c, _, b := newTestController(700, 500)
	c.PointerMove(200, 150)
	for i := 0; i < 10; i++ {
		b.Tick()
	}

	c.Resize(350, 250)
	r := c.Regions()[0]
	if !approxEqual(r.Center.X, 100, 1e-9) || !approxEqual(r.Center.Y, 75, 1e-9) {
		t.Errorf("center = %v, want (100, 75)", r.Center)
	}
	if !approxEqual(r.Radius, 45, 1e-9) {
		t.Errorf("radius = %v, want 45", r.Radius)
	}
	if b.Visible || b.Radius != 0 || b.X != 175 || b.Y != 125 {
		t.Errorf("beam = %+v, want hidden at (175, 125)", b)
	}
	if c.Hovered() != nil {
		t.Error("Hovered should reset on resize")
	}

	c.PointerMove(100, 75)
	if !approxEqual(b.TargetRadius, 49.5, 1e-9) {
		t.Errorf("TargetRadius = %v, want 49.5", b.TargetRadius)
	}
}

func TestControllerUnsizedIgnoresPointer(t *testing.T) {
	c, o, b := newTestController(0, 0)
	var moves int
	c.OnPointerMove(func(ctx PointerContext) {
		moves++
		if ctx.Region != nil {
			t.Error("unsized controller should not hit-test")
		}
	})
	if hit := c.PointerMove(200, 150); hit != nil {
		t.Errorf("hit = %v, want nil", hit)
	}
	if moves != 1 {
		t.Errorf("move handlers fired %d times, want 1", moves)
	}
	if o.TargetAlpha != 0 || b.Visible {
		t.Error("unsized controller should not change targets")
	}
	if r := c.Click(200, 150); r != nil {
		t.Errorf("Click = %v, want nil", r)
	}
}

func TestControllerToSurface(t *testing.T) {
	c, _, _ := newTestController(700, 500)

	// No viewport: identity.
	if x, y := c.ToSurface(10, 20); x != 10 || y != 20 {
		t.Errorf("ToSurface = (%v, %v), want (10, 20)", x, y)
	}

	// Surface displayed at half size, letterboxed 50px from the left.
	c.SetViewport(Rect{X: 50, Y: 0, Width: 350, Height: 250})
	x, y := c.ToSurface(150, 75)
	if x != 200 || y != 150 {
		t.Errorf("ToSurface = (%v, %v), want (200, 150)", x, y)
	}
	if hit := c.PointerMove(150, 75); hit == nil || hit.Index != 0 {
		t.Errorf("scaled PointerMove hit = %v, want region 0", hit)
	}
}

func TestControllerPointerMoveListenerOrder(t *testing.T) {
	c, o, _ := newTestController(700, 500)
	var sawTarget float64 = -1
	var ctxSeen PointerContext
	h := c.OnPointerMove(func(ctx PointerContext) {
		sawTarget = o.TargetAlpha
		ctxSeen = ctx
	})
	c.PointerMove(200, 150)
	if sawTarget != 0 {
		t.Errorf("listener saw TargetAlpha %v, want 0 (listeners run first)", sawTarget)
	}
	if ctxSeen.Region == nil || ctxSeen.Region.Index != 0 {
		t.Errorf("listener Region = %v, want region 0", ctxSeen.Region)
	}
	if ctxSeen.Surface != (Vec2{200, 150}) {
		t.Errorf("listener Surface = %v", ctxSeen.Surface)
	}

	h.Remove()
	sawTarget = -1
	c.PointerMove(0, 0)
	if sawTarget != -1 {
		t.Error("removed listener should not fire")
	}
}

func TestControllerClick(t *testing.T) {
	c, _, _ := newTestController(700, 500)
	sink := &recordingSink{}
	c.SetEventSink(sink)

	var selected []SelectionEvent
	c.OnSelect(func(evt SelectionEvent) {
		selected = append(selected, evt)
	})

	r := c.Click(350, 400)
	if r == nil || r.Name != "bottom" {
		t.Fatalf("Click = %v, want bottom", r)
	}
	if len(selected) != 1 || len(sink.events) != 1 {
		t.Fatalf("handlers = %d, sink = %d; want 1, 1", len(selected), len(sink.events))
	}
	evt := sink.events[0]
	if evt.Type != EventSelect || evt.Index != 2 || evt.Name != "bottom" {
		t.Errorf("event = %+v", evt)
	}
	if evt.X != 350 || evt.Y != 400 {
		t.Errorf("event position = (%v, %v), want (350, 400)", evt.X, evt.Y)
	}

	if r := c.Click(5, 5); r != nil {
		t.Errorf("Click miss = %v, want nil", r)
	}
	if len(selected) != 1 {
		t.Errorf("miss should not emit, got %d events", len(selected))
	}
}

func TestControllerSetRegions(t *testing.T) {
	c, o, b := newTestController(700, 500)
	c.PointerMove(200, 150)

	c.SetRegions([]RegionDef{{Name: "only", X: 0.5, Y: 0.5, R: 0.1}}, 0.4)
	if len(c.Regions()) != 1 {
		t.Fatalf("Regions = %d, want 1", len(c.Regions()))
	}
	if b.Active() != nil || b.Visible {
		t.Error("SetRegions should reset the beam")
	}
	c.PointerMove(350, 250)
	if o.TargetAlpha != 0.4 {
		t.Errorf("TargetAlpha = %v, want 0.4", o.TargetAlpha)
	}
}

func TestCallbackHandle_RemoveZero(t *testing.T) {
	// Should not panic.
	CallbackHandle{}.Remove()
}
