package spotlight

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type selectHandler struct {
	id uint32
	fn func(SelectionEvent)
}

type handlerRegistry struct {
	pointerMove  []pointerHandler
	pointerLeave []pointerHandler
	selects      []selectHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventSelect:
		h.reg.selects = removeSelectHandler(h.reg.selects, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeSelectHandler(s []selectHandler, id uint32) []selectHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = selectHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnPointerMove registers a callback fired on every pointer move, before
// the controller updates its targets.
func (c *Controller) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.pointerMove = append(c.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventPointerMove}
}

// OnPointerLeave registers a callback fired when the pointer leaves the surface.
func (c *Controller) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.pointerLeave = append(c.handlers.pointerLeave, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventPointerLeave}
}

// OnSelect registers a callback fired when a region is clicked.
func (c *Controller) OnSelect(fn func(SelectionEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.selects = append(c.handlers.selects, selectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventSelect}
}

// --- Pointer polling ---

type pointerState struct {
	last     Vec2
	inside   bool
	touching bool
}

// processInput turns ebiten's polled mouse and touch state into move, leave
// and select events. Called from Stage.Update with the stage lock held.
func (s *Stage) processInput() {
	if s.processInjectedInput() {
		return
	}

	vp := s.ctrl.Viewport()
	ps := &s.pointer

	touches := ebiten.AppendTouchIDs(s.touchBuf[:0])
	s.touchBuf = touches

	if ps.touching && len(touches) == 0 {
		// Lifting a finger selects at the last touch position and leaves.
		last := ps.last
		s.ctrl.Click(last.X, last.Y)
		s.feedPointer(last, false)
		ps.touching = false
		return
	}

	var p Vec2
	var inside bool
	if len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		p = Vec2{float64(tx), float64(ty)}
		inside = vp.Contains(p.X, p.Y)
	} else {
		mx, my := ebiten.CursorPosition()
		p = Vec2{float64(mx), float64(my)}
		inside = ebiten.IsFocused() && vp.Contains(p.X, p.Y)
	}

	s.feedPointer(p, inside)
	if len(touches) == 0 && inside && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.ctrl.Click(p.X, p.Y)
	}
	ps.touching = len(touches) > 0
}

// feedPointer emits a move when the pointer is inside and has moved (or just
// entered), and a leave when it has just exited.
func (s *Stage) feedPointer(p Vec2, inside bool) {
	ps := &s.pointer
	switch {
	case inside && (!ps.inside || p != ps.last):
		s.ctrl.PointerMove(p.X, p.Y)
	case !inside && ps.inside:
		s.ctrl.PointerLeave()
	}
	ps.inside = inside
	ps.last = p
}
