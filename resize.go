package gizmo

import "math"

// ResizeConfig wires a Resizer to the element it resizes and to the host
// callbacks that apply the result.
type ResizeConfig struct {
	// Resizable gates Subscribe. When false nothing is bound.
	Resizable bool
	// Canvas, when set, is the frame the emitted positions are relative to.
	// Its bounds' top-left is subtracted from every point.
	Canvas *Node
	// Element is the node being resized.
	Element *Node
	// OnMove receives the new top-left of the unrotated box and its size.
	OnMove func(pos, size Vec2)
	// OnEnd runs once when the gesture finishes.
	OnEnd func()
}

// resizeFrame is the baseline captured on pointer down. It is never mutated
// while the gesture is active.
type resizeFrame struct {
	center     Vec2
	curPoint   Vec2
	symmetric  Vec2
	proportion float64
	rotate     float64
	// width and height are the element's live size, read on every move by
	// the edge handles.
	width, height float64
}

type resizeSession struct {
	handle    Handle
	frame     resizeFrame
	pointerID int
	capture   *Node

	move, up, cancel CallbackHandle
}

// Resizer turns pointer drags on eight handles into rotation-aware size and
// position updates for an element. Corner handles keep the element's aspect
// ratio; edge handles change one dimension.
type Resizer struct {
	cfg     ResizeConfig
	scene   *Scene
	handles map[Handle]*Node
	session *resizeSession
}

// NewResizer returns an idle Resizer.
func NewResizer(cfg ResizeConfig) *Resizer {
	return &Resizer{cfg: cfg}
}

// Subscribe binds pointer-down on each handle node to Begin. Presses on a
// handle stop propagating so an enclosing drag does not start as well.
// Does nothing when Resizable is false.
func (r *Resizer) Subscribe(scene *Scene, handles map[Handle]*Node) {
	if !r.cfg.Resizable {
		return
	}
	r.scene = scene
	r.handles = handles
	for h, node := range handles {
		if node == nil {
			continue
		}
		node.Interactable = true
		node.OnPointerDown = func(ctx PointerContext) {
			ctx.StopPropagation()
			r.Begin(h, ctx.Event())
		}
	}
	r.UpdateCursors()
}

// Unsubscribe detaches the handle callbacks and ends any active gesture.
func (r *Resizer) Unsubscribe() {
	r.End()
	for _, node := range r.handles {
		if node != nil {
			node.OnPointerDown = nil
		}
	}
	r.handles = nil
}

// Active reports whether a resize gesture is in progress.
func (r *Resizer) Active() bool {
	return r.session != nil
}

func (r *Resizer) canvasOrigin() Vec2 {
	if r.cfg.Canvas == nil {
		return Vec2{}
	}
	b := r.cfg.Canvas.Bounds()
	return Vec2{b.X, b.Y}
}

// Begin starts a resize from handle at the pointer position in e. A second
// Begin while a gesture is active is ignored.
func (r *Resizer) Begin(handle Handle, e PointerEvent) {
	el := r.cfg.Element
	if r.session != nil || el == nil || !e.IsPrimary() {
		return
	}
	origin := r.canvasOrigin()
	center := el.Bounds().Center().Sub(origin)
	cur := e.Point().Sub(origin)
	proportion := 1.0
	if el.Height > 0 {
		proportion = el.Width / el.Height
	}
	sess := &resizeSession{
		handle:    handle,
		pointerID: e.PointerID,
		frame: resizeFrame{
			center:     center,
			curPoint:   cur,
			symmetric:  Vec2{2*center.X - cur.X, 2*center.Y - cur.Y},
			proportion: proportion,
			rotate:     sanitizeDegrees(el.Rotation),
		},
	}
	r.session = sess
	debugf("resize begin handle=%s center=(%.1f,%.1f) rotate=%.1f", handle, center.X, center.Y, sess.frame.rotate)

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

// Move recomputes the element's box for the pointer position in e and hands
// it to OnMove. ok is false when no gesture is active or the pointer has
// crossed the anchor so that the box would be empty; OnMove is not called
// then.
func (r *Resizer) Move(e PointerEvent) (pos, size Vec2, ok bool) {
	sess := r.session
	if sess == nil {
		return Vec2{}, Vec2{}, false
	}
	f := sess.frame
	f.width, f.height = r.cfg.Element.Width, r.cfg.Element.Height
	pos, size, ok = resizeStep(sess.handle, f, e.Point().Sub(r.canvasOrigin()))
	if !ok {
		return pos, size, false
	}
	if r.cfg.OnMove != nil {
		r.cfg.OnMove(pos, size)
	}
	r.scene.emitGesture(GestureEvent{
		Kind:     GestureResize,
		EntityID: r.cfg.Element.EntityID,
		Handle:   sess.handle,
		X:        pos.X,
		Y:        pos.Y,
		Width:    size.X,
		Height:   size.Y,
	})
	return pos, size, true
}

// End finishes the gesture: handlers and capture are released, OnEnd runs and
// the handle cursors are refreshed for the element's current rotation. No-op
// when idle.
func (r *Resizer) End() {
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
	debugf("resize end handle=%s", sess.handle)
	if r.cfg.OnEnd != nil {
		r.cfg.OnEnd()
	}
	if r.cfg.Element != nil {
		r.scene.emitGesture(GestureEvent{Kind: GestureEnd, EntityID: r.cfg.Element.EntityID, Handle: sess.handle})
	}
	r.UpdateCursors()
}

// UpdateCursors stamps every subscribed handle with the resize cursor that
// matches the element's rotation.
func (r *Resizer) UpdateCursors() {
	if r.cfg.Element == nil {
		return
	}
	rot := sanitizeDegrees(r.cfg.Element.Rotation)
	for h, node := range r.handles {
		if node != nil {
			node.Cursor = CursorFor(h, rot)
		}
	}
}

// --- Cursor mapping ---

var handleBaseAngle = [...]float64{
	HandleNW: 0,
	HandleN:  45,
	HandleNE: 90,
	HandleE:  135,
	HandleSE: 180,
	HandleS:  225,
	HandleSW: 270,
	HandleW:  315,
}

// cursorBuckets are the lower bounds of seven 45-degree ranges starting at
// 23. Angles in [338, 360) or [0, 23) map to CursorNWResize.
var cursorBuckets = [...]struct {
	start  float64
	cursor Cursor
}{
	{23, CursorNResize},
	{68, CursorNEResize},
	{113, CursorEResize},
	{158, CursorSEResize},
	{203, CursorSResize},
	{248, CursorSWResize},
	{293, CursorWResize},
	{338, CursorNWResize},
}

// CursorFor returns the resize cursor for handle when the element is rotated
// by rotation degrees.
func CursorFor(handle Handle, rotation float64) Cursor {
	if int(handle) >= len(handleBaseAngle) {
		return CursorDefault
	}
	a := normalizeDegrees(sanitizeDegrees(rotation) + handleBaseAngle[handle])
	c := CursorNWResize
	for _, b := range cursorBuckets {
		if a < b.start {
			break
		}
		c = b.cursor
	}
	return c
}

// --- Per-handle geometry ---

// resizeStep computes the new box for pointer p, both in canvas space.
func resizeStep(h Handle, f resizeFrame, p Vec2) (pos, size Vec2, ok bool) {
	switch h {
	case HandleNW:
		return resizeNW(f, p)
	case HandleNE:
		return resizeNE(f, p)
	case HandleSE:
		return resizeSE(f, p)
	case HandleSW:
		return resizeSW(f, p)
	case HandleN, HandleS, HandleE, HandleW:
		return resizeEdge(h, f, p)
	}
	return Vec2{}, Vec2{}, false
}

// repivot is the second pass shared by the corner handles. After the dragged
// corner was corrected for the aspect ratio in the first center's frame, it
// is rotated back to canvas space, the center is recomputed against the
// fixed symmetric point, and both corners are un-rotated about that center.
func repivot(dragged, symmetric, center Vec2, rot float64) (Vec2, Vec2) {
	world := RotatePoint(dragged, center, rot)
	c := Midpoint(world, symmetric)
	return RotatePoint(world, c, -rot), RotatePoint(symmetric, c, -rot)
}

func box(x, y, w, h float64) (pos, size Vec2, ok bool) {
	if !(w > 0 && h > 0) {
		return Vec2{}, Vec2{}, false
	}
	return Vec2{x, y}, Vec2{w, h}, true
}

func resizeNW(f resizeFrame, p Vec2) (Vec2, Vec2, bool) {
	center := Midpoint(p, f.symmetric)
	tl := RotatePoint(p, center, -f.rotate)
	br := RotatePoint(f.symmetric, center, -f.rotate)
	w, h := br.X-tl.X, br.Y-tl.Y
	if w/h > f.proportion {
		tl.X += math.Abs(w - h*f.proportion)
	} else {
		tl.Y += math.Abs(h - w/f.proportion)
	}
	tl, br = repivot(tl, f.symmetric, center, f.rotate)
	return box(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
}

func resizeNE(f resizeFrame, p Vec2) (Vec2, Vec2, bool) {
	center := Midpoint(p, f.symmetric)
	tr := RotatePoint(p, center, -f.rotate)
	bl := RotatePoint(f.symmetric, center, -f.rotate)
	w, h := tr.X-bl.X, bl.Y-tr.Y
	if w/h > f.proportion {
		tr.X -= math.Abs(w - h*f.proportion)
	} else {
		tr.Y += math.Abs(h - w/f.proportion)
	}
	tr, bl = repivot(tr, f.symmetric, center, f.rotate)
	return box(bl.X, tr.Y, tr.X-bl.X, bl.Y-tr.Y)
}

func resizeSE(f resizeFrame, p Vec2) (Vec2, Vec2, bool) {
	center := Midpoint(p, f.symmetric)
	tl := RotatePoint(f.symmetric, center, -f.rotate)
	br := RotatePoint(p, center, -f.rotate)
	w, h := br.X-tl.X, br.Y-tl.Y
	if w/h > f.proportion {
		br.X -= math.Abs(w - h*f.proportion)
	} else {
		br.Y -= math.Abs(h - w/f.proportion)
	}
	br, tl = repivot(br, f.symmetric, center, f.rotate)
	return box(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
}

func resizeSW(f resizeFrame, p Vec2) (Vec2, Vec2, bool) {
	center := Midpoint(p, f.symmetric)
	tr := RotatePoint(f.symmetric, center, -f.rotate)
	bl := RotatePoint(p, center, -f.rotate)
	w, h := tr.X-bl.X, bl.Y-tr.Y
	if w/h > f.proportion {
		bl.X += math.Abs(w - h*f.proportion)
	} else {
		bl.Y -= math.Abs(h - w/f.proportion)
	}
	bl, tr = repivot(bl, f.symmetric, center, f.rotate)
	return box(bl.X, tr.Y, tr.X-bl.X, bl.Y-tr.Y)
}

// resizeEdge handles N, S, E and W. The pointer is projected onto the axis
// through the press point perpendicular to the dragged edge, in the
// element's rotated frame. The opposite edge stays where it was.
func resizeEdge(h Handle, f resizeFrame, p Vec2) (Vec2, Vec2, bool) {
	local := RotatePoint(p, f.curPoint, -f.rotate)
	anchor := RotatePoint(f.symmetric, f.curPoint, -f.rotate)

	var edge Vec2
	var extent float64
	switch h {
	case HandleN:
		edge, extent = Vec2{f.curPoint.X, local.Y}, anchor.Y-local.Y
	case HandleS:
		edge, extent = Vec2{f.curPoint.X, local.Y}, local.Y-anchor.Y
	case HandleW:
		edge, extent = Vec2{local.X, f.curPoint.Y}, anchor.X-local.X
	case HandleE:
		edge, extent = Vec2{local.X, f.curPoint.Y}, local.X-anchor.X
	}
	if !(extent > 0) {
		return Vec2{}, Vec2{}, false
	}
	edge = RotatePoint(edge, f.curPoint, f.rotate)

	size := Vec2{f.width, f.height}
	d := Distance(edge, f.symmetric)
	if h == HandleN || h == HandleS {
		size.Y = d
	} else {
		size.X = d
	}
	center := Midpoint(edge, f.symmetric)
	pos := Vec2{math.Round(center.X - size.X/2), math.Round(center.Y - size.Y/2)}
	return pos, size, true
}
