package gizmo

// syntheticPointerEvent represents a single injected pointer event in world
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	cancel  bool
	button  MouseButton
}

// InjectPress queues a pointer press event at the given coordinates (left
// button). The event is consumed by the next Update or Tick.
func (s *Scene) InjectPress(x, y float64) {
	s.InjectButtonPress(x, y, MouseButtonLeft)
}

// InjectButtonPress is like InjectPress with an explicit mouse button.
func (s *Scene) InjectButtonPress(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  button,
	})
}

// InjectMove queues a pointer move event at the given coordinates with the
// button held down. Use this between InjectPress and InjectRelease to
// simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectCancel queues a pointer cancel for the mouse pointer.
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{cancel: true})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two ticks.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` ticks.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer as the mouse pointer. Returns true if an event was
// consumed (real mouse input should be skipped).
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.cancel {
		s.CancelPointer(0)
		return true
	}
	s.processPointer(0, evt.x, evt.y, evt.pressed, evt.button, PointerMouse, mods)
	return true
}
