package gizmo

import "math"

// RotateConfig wires a Rotator to its element and host callbacks.
type RotateConfig struct {
	Rotatable bool
	Element   *Node
	// OnMove receives the change in angle since the previous move, in
	// degrees, always on the short arc.
	OnMove func(deg float64)
	OnEnd  func()
}

type rotateSession struct {
	center    Vec2
	lastAngle float64
	pointerID int
	capture   *Node

	move, up, cancel CallbackHandle
}

// Rotator reports how far the pointer has swung around an element's center.
type Rotator struct {
	cfg     RotateConfig
	scene   *Scene
	handle  *Node
	session *rotateSession
}

// NewRotator returns an idle Rotator.
func NewRotator(cfg RotateConfig) *Rotator {
	return &Rotator{cfg: cfg}
}

// Subscribe binds pointer-down on handle to Begin. Does nothing when
// Rotatable is false.
func (r *Rotator) Subscribe(scene *Scene, handle *Node) {
	if !r.cfg.Rotatable || handle == nil {
		return
	}
	r.scene = scene
	r.handle = handle
	handle.Interactable = true
	handle.Cursor = CursorGrab
	handle.OnPointerDown = func(ctx PointerContext) {
		ctx.StopPropagation()
		r.Begin(ctx.Event())
	}
}

// Unsubscribe detaches the handle and ends any active gesture.
func (r *Rotator) Unsubscribe() {
	r.End()
	if r.handle != nil {
		r.handle.OnPointerDown = nil
		r.handle = nil
	}
}

// Active reports whether a rotate gesture is in progress.
func (r *Rotator) Active() bool {
	return r.session != nil
}

func pointerAngle(p, c Vec2) float64 {
	return RadToDeg(math.Atan2(p.Y-c.Y, p.X-c.X))
}

// Begin records the element's center and the starting angle of the pointer.
func (r *Rotator) Begin(e PointerEvent) {
	el := r.cfg.Element
	if r.session != nil || el == nil || !e.IsPrimary() {
		return
	}
	c := el.Bounds().Center()
	sess := &rotateSession{
		center:    c,
		lastAngle: pointerAngle(e.Point(), c),
		pointerID: e.PointerID,
	}
	r.session = sess
	debugf("rotate begin center=(%.1f,%.1f) angle=%.1f", c.X, c.Y, sess.lastAngle)
	if r.handle != nil {
		r.handle.Cursor = CursorGrabbing
	}

	if r.scene == nil {
		return
	}
	sess.move = r.scene.OnPointerMove(func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			r.Move(ctx.Event())
		}
	})
	end := func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			r.End()
		}
	}
	sess.up = r.scene.OnPointerUp(end)
	sess.cancel = r.scene.OnPointerCancel(end)
	if e.Target != nil {
		sess.capture = e.Target
		r.scene.CapturePointer(e.PointerID, e.Target)
	}
}

// Move returns the signed angle swept since the previous call, wrapped into
// (-180, 180], and passes it to OnMove. Returns 0 when idle.
func (r *Rotator) Move(e PointerEvent) float64 {
	sess := r.session
	if sess == nil {
		return 0
	}
	a := pointerAngle(e.Point(), sess.center)
	d := WrapDegrees(a - sess.lastAngle)
	sess.lastAngle = a
	if r.cfg.OnMove != nil {
		r.cfg.OnMove(d)
	}
	r.scene.emitGesture(GestureEvent{Kind: GestureRotate, EntityID: r.cfg.Element.EntityID, Delta: d})
	return d
}

// End finishes the gesture. No-op when idle.
func (r *Rotator) End() {
	sess := r.session
	if sess == nil {
		return
	}
	r.session = nil
	sess.move.Remove()
	sess.up.Remove()
	sess.cancel.Remove()
	if r.scene != nil && sess.capture != nil && r.scene.CapturedNode(sess.pointerID) == sess.capture {
		r.scene.ReleasePointer(sess.pointerID)
	}
	if r.handle != nil {
		r.handle.Cursor = CursorGrab
	}
	debugf("rotate end")
	if r.cfg.OnEnd != nil {
		r.cfg.OnEnd()
	}
	r.scene.emitGesture(GestureEvent{Kind: GestureEnd, EntityID: r.cfg.Element.EntityID})
}
