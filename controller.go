package spotlight

// EventSink is the interface for optional outbound integration.
// When set on a Controller, selection events are forwarded to it.
type EventSink interface {
	EmitSelection(event SelectionEvent)
}

// SelectionEvent reports a region chosen by the operator.
type SelectionEvent struct {
	Type   EventType
	Index  int
	Name   string
	Region RegionDef
	// X and Y are the pointer position in surface pixels.
	X, Y float64
}

// PointerContext is passed to pointer listeners.
type PointerContext struct {
	Type EventType
	// Device is the raw pointer position; Surface is the mapped position.
	Device  Vec2
	Surface Vec2
	// Region is the region under the pointer, or nil.
	Region *Region
}

// Controller maps pointer input onto regions and drives the Overlay and
// Beam targets. It is not safe for concurrent use; Stage serializes access.
type Controller struct {
	regions  []*Region
	overlay  *Overlay
	beam     *Beam
	dimAlpha float64

	viewport Rect
	surfaceW float64
	surfaceH float64

	handlers handlerRegistry
	sink     EventSink
	hovered  *Region
}

// NewController builds unresolved regions from defs. Call Resize before
// feeding pointer events.
func NewController(defs []RegionDef, overlay *Overlay, beam *Beam, dimAlpha float64) *Controller {
	return &Controller{
		regions:  newRegions(defs),
		overlay:  overlay,
		beam:     beam,
		dimAlpha: dimAlpha,
	}
}

// Regions returns the controller's regions in configuration order.
// The returned slice MUST NOT be mutated.
func (c *Controller) Regions() []*Region {
	return c.regions
}

// Hovered returns the region the pointer was last over, or nil.
func (c *Controller) Hovered() *Region {
	return c.hovered
}

// SetEventSink sets the optional selection bridge.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetViewport sets the rectangle, in device coordinates, the surface is
// displayed in. An empty viewport maps device coordinates unchanged.
func (c *Controller) SetViewport(vp Rect) {
	c.viewport = vp
}

// Viewport returns the display rectangle.
func (c *Controller) Viewport() Rect {
	return c.viewport
}

// SurfaceSize returns the backing surface size in pixels.
func (c *Controller) SurfaceSize() (float64, float64) {
	return c.surfaceW, c.surfaceH
}

func (c *Controller) sized() bool {
	return c.surfaceW > 0 && c.surfaceH > 0
}

// ToSurface converts device coordinates to surface pixels, accounting for
// the scale between displayed size and backing resolution.
func (c *Controller) ToSurface(px, py float64) (float64, float64) {
	vp := c.viewport
	if vp.Empty() || !c.sized() {
		return px, py
	}
	return (px - vp.X) * (c.surfaceW / vp.Width), (py - vp.Y) * (c.surfaceH / vp.Height)
}

// Resize resolves every region for a w x h surface and resets the beam to
// the surface midpoint. In-flight animation does not survive a resize.
func (c *Controller) Resize(w, h float64) {
	c.surfaceW, c.surfaceH = w, h
	for _, r := range c.regions {
		r.resolve(w, h)
	}
	c.beam.Reset(w/2, h/2)
	c.hovered = nil
}

// SetRegions replaces the region set, resolving it for the current surface
// and resetting the beam.
func (c *Controller) SetRegions(defs []RegionDef, dimAlpha float64) {
	c.regions = newRegions(defs)
	c.dimAlpha = dimAlpha
	c.Resize(c.surfaceW, c.surfaceH)
}

// PointerMove handles a pointer move at device coordinates (px, py).
// Listeners run first so an observer such as a running sequence can yield
// before the pointer takes over. Returns the region under the pointer.
func (c *Controller) PointerMove(px, py float64) *Region {
	x, y := c.ToSurface(px, py)
	var hit *Region
	if c.sized() {
		hit = hitTest(c.regions, x, y)
	}

	ctx := PointerContext{
		Type:    EventPointerMove,
		Device:  Vec2{px, py},
		Surface: Vec2{x, y},
		Region:  hit,
	}
	for _, h := range c.handlers.pointerMove {
		h.fn(ctx)
	}
	if !c.sized() {
		return nil
	}

	if hit != nil {
		if hit != c.hovered {
			debugf("activate region %d (%s)", hit.Index, hit.Name)
		}
		c.beam.Activate(hit, Vec2{x, y})
		c.overlay.SetTarget(c.dimAlpha)
	} else {
		if c.hovered != nil {
			debugf("deactivate region %d (%s)", c.hovered.Index, c.hovered.Name)
		}
		c.release()
	}
	c.hovered = hit
	return hit
}

// PointerLeave handles the pointer leaving the surface.
func (c *Controller) PointerLeave() {
	ctx := PointerContext{Type: EventPointerLeave}
	for _, h := range c.handlers.pointerLeave {
		h.fn(ctx)
	}
	c.release()
	c.hovered = nil
}

func (c *Controller) release() {
	c.beam.Deactivate()
	c.overlay.SetTarget(0)
}

// Click hit-tests (px, py) and emits a selection event when a region is
// under the pointer. Returns the selected region or nil.
func (c *Controller) Click(px, py float64) *Region {
	if !c.sized() {
		return nil
	}
	x, y := c.ToSurface(px, py)
	r := hitTest(c.regions, x, y)
	if r == nil {
		return nil
	}
	evt := SelectionEvent{
		Type:   EventSelect,
		Index:  r.Index,
		Name:   r.Name,
		Region: r.Def,
		X:      x,
		Y:      y,
	}
	debugf("select region %d (%s)", r.Index, r.Name)
	for _, h := range c.handlers.selects {
		h.fn(evt)
	}
	if c.sink != nil {
		c.sink.EmitSelection(evt)
	}
	return r
}
