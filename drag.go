package gizmo

// DragConfig wires a Dragger to its element and host callbacks.
type DragConfig struct {
	Draggable bool
	Element   *Node
	// OnMove receives the pointer movement since the previous move.
	OnMove func(dx, dy float64)
	OnEnd  func()
	// OnClickHandle runs when a handle is pressed and released without the
	// pointer moving in between.
	OnClickHandle func(handle *Node)
}

type dragSession struct {
	last      Vec2
	moved     bool
	pointerID int
	capture   *Node

	move, up, cancel CallbackHandle
}

// Dragger translates an element by the pointer's movement, either from the
// element itself or from a set of handle nodes.
type Dragger struct {
	cfg     DragConfig
	scene   *Scene
	handles []*Node
	session *dragSession

	// clickArmed is set when the last gesture was released without moving,
	// and consumed by the click that follows the release.
	clickArmed bool
}

// NewDragger returns an idle Dragger.
func NewDragger(cfg DragConfig) *Dragger {
	return &Dragger{cfg: cfg}
}

// Subscribe binds pointer-down on each handle to Begin, or on the element
// itself when no handles are given. Does nothing when Draggable is false.
func (d *Dragger) Subscribe(scene *Scene, handles ...*Node) {
	if !d.cfg.Draggable {
		return
	}
	if len(handles) == 0 && d.cfg.Element != nil {
		handles = []*Node{d.cfg.Element}
	}
	d.scene = scene
	d.handles = handles
	for _, h := range handles {
		if h == nil {
			continue
		}
		node := h
		node.Interactable = true
		node.Cursor = CursorGrab
		node.OnPointerDown = func(ctx PointerContext) {
			ctx.StopPropagation()
			d.Begin(ctx.Event())
		}
		node.OnClick = func(ctx PointerContext) {
			if !d.clickArmed {
				return
			}
			d.clickArmed = false
			if d.cfg.OnClickHandle != nil {
				d.cfg.OnClickHandle(node)
			}
		}
	}
}

// Unsubscribe detaches the handles and ends any active gesture.
func (d *Dragger) Unsubscribe() {
	d.End()
	for _, h := range d.handles {
		if h != nil {
			h.OnPointerDown = nil
			h.OnClick = nil
		}
	}
	d.handles = nil
}

// Active reports whether a drag is in progress.
func (d *Dragger) Active() bool {
	return d.session != nil
}

// Begin records the pointer position.
func (d *Dragger) Begin(e PointerEvent) {
	if d.session != nil || !e.IsPrimary() {
		return
	}
	sess := &dragSession{last: e.Point(), pointerID: e.PointerID}
	d.session = sess
	d.clickArmed = false
	debugf("drag begin at (%.1f,%.1f)", e.X, e.Y)

	if d.scene == nil {
		return
	}
	sess.move = d.scene.OnPointerMove(func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			d.Move(ctx.Event())
		}
	})
	sess.up = d.scene.OnPointerUp(func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			d.End()
		}
	})
	sess.cancel = d.scene.OnPointerCancel(func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			d.End()
			d.clickArmed = false
		}
	})
	if e.Target != nil {
		sess.capture = e.Target
		d.scene.CapturePointer(e.PointerID, e.Target)
		e.Target.Cursor = CursorGrabbing
	}
}

// Move returns the movement since the previous pointer position and passes
// it to OnMove. Returns zeros when idle.
func (d *Dragger) Move(e PointerEvent) (dx, dy float64) {
	sess := d.session
	if sess == nil {
		return 0, 0
	}
	dx, dy = e.X-sess.last.X, e.Y-sess.last.Y
	sess.last = e.Point()
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	sess.moved = true
	if d.cfg.OnMove != nil {
		d.cfg.OnMove(dx, dy)
	}
	var id uint32
	if d.cfg.Element != nil {
		id = d.cfg.Element.EntityID
	}
	d.scene.emitGesture(GestureEvent{Kind: GestureTranslate, EntityID: id, DeltaX: dx, DeltaY: dy})
	return dx, dy
}

// End finishes the drag. No-op when idle.
func (d *Dragger) End() {
	sess := d.session
	if sess == nil {
		return
	}
	d.session = nil
	d.clickArmed = !sess.moved
	sess.move.Remove()
	sess.up.Remove()
	sess.cancel.Remove()
	if sess.capture != nil {
		sess.capture.Cursor = CursorGrab
		if d.scene != nil && d.scene.CapturedNode(sess.pointerID) == sess.capture {
			d.scene.ReleasePointer(sess.pointerID)
		}
	}
	debugf("drag end moved=%t", sess.moved)
	if d.cfg.OnEnd != nil {
		d.cfg.OnEnd()
	}
	var id uint32
	if d.cfg.Element != nil {
		id = d.cfg.Element.EntityID
	}
	d.scene.emitGesture(GestureEvent{Kind: GestureEnd, EntityID: id})
}
