package spotlight

// syntheticEvent is a single injected host event. Coordinates are device
// coordinates, mapped to the surface exactly like real pointer input.
type syntheticEvent struct {
	typ  EventType
	x, y float64
	w, h int
}

// InjectMove queues a pointer move at (x, y). Injected events are consumed
// one per frame and suppress real pointer input for that frame.
func (s *Stage) InjectMove(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectMoveLocked(x, y)
}

func (s *Stage) injectMoveLocked(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{typ: EventPointerMove, x: x, y: y})
}

// InjectLeave queues a pointer leave.
func (s *Stage) InjectLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectLeaveLocked()
}

func (s *Stage) injectLeaveLocked() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{typ: EventPointerLeave})
}

// InjectClick queues a move to (x, y) followed by a selection there.
// Consumes two frames.
func (s *Stage) InjectClick(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectClickLocked(x, y)
}

func (s *Stage) injectClickLocked(x, y float64) {
	s.injectMoveLocked(x, y)
	s.injectQueue = append(s.injectQueue, syntheticEvent{typ: EventSelect, x: x, y: y})
}

// InjectResize queues a surface resize.
func (s *Stage) InjectResize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectResizeLocked(w, h)
}

func (s *Stage) injectResizeLocked(w, h int) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{typ: EventResize, w: w, h: h})
}

// InjectPath queues pointer moves from (fromX, fromY) to (toX, toY),
// linearly interpolated over frames frames. Minimum frames is 2.
func (s *Stage) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injectPathLocked(fromX, fromY, toX, toY, frames)
}

func (s *Stage) injectPathLocked(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.injectMoveLocked(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the controller. Returns true if an event was consumed (real
// pointer input is skipped for the frame).
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.typ {
	case EventPointerMove:
		s.ctrl.PointerMove(evt.x, evt.y)
		s.pointer.inside = true
		s.pointer.last = Vec2{evt.x, evt.y}
	case EventPointerLeave:
		s.ctrl.PointerLeave()
		s.pointer.inside = false
	case EventSelect:
		s.ctrl.Click(evt.x, evt.y)
	case EventResize:
		s.resizeLocked(evt.w, evt.h)
	}
	return true
}
