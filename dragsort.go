package gizmo

import (
	"github.com/tanema/gween/ease"
)

// maxAncestorDepth bounds the walk from a pressed node up to the container's
// direct child. Presses on nodes nested deeper than this are ignored.
const maxAncestorDepth = 64

// DragSortConfig configures a DragSort.
type DragSortConfig[T any] struct {
	Sortable bool
	// OnChange receives a reordered copy of the data after every move.
	OnChange func(data []T)
	// Settings overrides DefaultSettings when non-nil.
	Settings *Settings
}

type sortSlot struct {
	node      *Node
	index     int
	lastIndex int
}

type sortClone struct {
	node *Node
	x, y float64
}

type dragSortSession struct {
	drag        sortSlot
	drop        sortSlot
	clone       sortClone
	lastPointer Vec2
	pointerID   int
	savedBg     Color

	scrollUpTimer   *Timer
	scrollDownTimer *Timer

	move, up, cancel CallbackHandle
}

// DragSort lets the user reorder a container's children by dragging them.
// The dragged child is followed by a translucent clone, siblings slide into
// place with a FLIP animation, and the container scrolls when the pointer
// leaves it vertically. data is kept in the same order as the children.
type DragSort[T any] struct {
	container *Node
	data      []T
	cfg       DragSortConfig[T]
	settings  Settings
	active    Color
	scene     *Scene

	// Rect cache, index-aligned with rectNodes. fatherScroll is the
	// container's ScrollTop when the cache was taken.
	fatherRect   Rect
	fatherScroll float64
	childRects   []Rect
	rectNodes    []*Node

	flips   map[*Node]*TweenGroup
	session *dragSortSession

	removeUpdater func()
	removeResize  func()
}

// NewDragSort returns an idle DragSort for container. data is copied.
//
// The clone that follows the pointer is attached to the topmost ancestor of
// container, or to container itself when it has no parent. In that case the
// clone is its last child for the length of the drag and is left out of the
// rect cache and the reorder indices.
func NewDragSort[T any](container *Node, data []T, cfg DragSortConfig[T]) *DragSort[T] {
	s := DefaultSettings()
	if cfg.Settings != nil {
		s = *cfg.Settings
	}
	return &DragSort[T]{
		container: container,
		data:      append([]T(nil), data...),
		cfg:       cfg,
		settings:  s,
		active:    parseColorOr(s.ActiveColor, ColorWhite),
		flips:     make(map[*Node]*TweenGroup),
	}
}

// Subscribe binds pointer-down on the container, advances timers and
// animations from the scene's updates, and refreshes the rect cache when the
// viewport is resized. Does nothing when Sortable is false.
func (d *DragSort[T]) Subscribe(scene *Scene) {
	if !d.cfg.Sortable || d.container == nil {
		return
	}
	d.scene = scene
	d.container.Interactable = true
	for _, c := range d.container.children {
		c.Interactable = true
	}
	// Rows added later must be hit-testable too.
	d.container.onChildAdded = func(c *Node) { c.Interactable = true }
	d.container.OnPointerDown = func(ctx PointerContext) {
		d.Begin(ctx.Event())
	}
	if scene != nil {
		d.removeUpdater = scene.AddUpdater(d)
		d.removeResize = scene.OnResize(func(int, int) { d.Refresh() })
	}
}

// Unsubscribe detaches everything Subscribe bound and ends any drag.
func (d *DragSort[T]) Unsubscribe() {
	d.End()
	if d.container != nil {
		d.container.OnPointerDown = nil
		d.container.onChildAdded = nil
	}
	if d.removeUpdater != nil {
		d.removeUpdater()
		d.removeUpdater = nil
	}
	if d.removeResize != nil {
		d.removeResize()
		d.removeResize = nil
	}
}

// Data returns the current order. The slice must not be modified.
func (d *DragSort[T]) Data() []T {
	return d.data
}

// SetData replaces the data, copying it, and recaches the layout. Call it
// after adding or removing children so both stay index-aligned.
func (d *DragSort[T]) SetData(data []T) {
	d.data = append(d.data[:0:0], data...)
	d.Refresh()
}

// Dragging reports whether a drag is in progress.
func (d *DragSort[T]) Dragging() bool {
	return d.session != nil
}

// DragIndex returns the dragged child's current index, or -1 when idle.
func (d *DragSort[T]) DragIndex() int {
	if d.session == nil {
		return -1
	}
	return d.session.drag.index
}

// CloneNode returns the node following the pointer, or nil when idle.
func (d *DragSort[T]) CloneNode() *Node {
	if d.session == nil {
		return nil
	}
	return d.session.clone.node
}

// AutoScrolling reports which autoscroll timers are running.
func (d *DragSort[T]) AutoScrolling() (up, down bool) {
	if d.session == nil {
		return false, false
	}
	return d.session.scrollUpTimer.Active(), d.session.scrollDownTimer.Active()
}

// Refresh recaches the container's and children's layout rectangles.
func (d *DragSort[T]) Refresh() {
	if d.container == nil {
		return
	}
	d.fatherRect = d.container.LayoutBounds()
	d.fatherScroll = d.container.ScrollTop
	d.childRects = d.childRects[:0]
	d.rectNodes = d.rectNodes[:0]
	clone := d.CloneNode()
	for _, c := range d.container.children {
		if c == clone {
			continue
		}
		d.childRects = append(d.childRects, c.LayoutBounds())
		d.rectNodes = append(d.rectNodes, c)
	}
}

// stale reports whether the container moved or scrolled since the rect cache
// was taken, as happens when an ancestor scrolls.
func (d *DragSort[T]) stale() bool {
	return d.container.LayoutBounds() != d.fatherRect || d.container.ScrollTop != d.fatherScroll
}

// directChild walks up from n to the container's direct child. It returns
// nil when the container is not reached within maxAncestorDepth steps.
func (d *DragSort[T]) directChild(n *Node) *Node {
	for depth := 0; n != nil && depth < maxAncestorDepth; depth++ {
		if n.Parent == d.container {
			return n
		}
		n = n.Parent
	}
	return nil
}

// treeRoot returns the topmost ancestor of the container, where the clone is
// attached.
func (d *DragSort[T]) treeRoot() *Node {
	n := d.container
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Begin starts dragging the container child that contains e.Target. Presses
// on the container itself, outside it, or with a non-primary mouse button
// are ignored.
func (d *DragSort[T]) Begin(e PointerEvent) {
	if d.session != nil || d.container == nil || !e.IsPrimary() {
		return
	}
	if e.Target == nil || e.Target == d.container {
		return
	}
	d.Refresh()
	child := d.directChild(e.Target)
	if child == nil {
		return
	}
	i := d.container.IndexOf(child)
	if i < 0 || i >= len(d.childRects) {
		return
	}

	sess := &dragSortSession{
		drag:        sortSlot{node: child, index: i, lastIndex: i},
		lastPointer: e.Point(),
		pointerID:   e.PointerID,
		savedBg:     child.Background,
	}
	child.Background = d.active

	r := d.childRects[i]
	clone := child.Clone()
	clone.Fixed = true
	clone.OffsetX, clone.OffsetY = 0, 0
	clone.X, clone.Y = r.X, r.Y
	clone.ZIndex = d.settings.CloneZIndex
	clone.Alpha = d.settings.CloneAlpha
	d.treeRoot().AddChild(clone)
	clone.Interactable = false
	sess.clone = sortClone{node: clone, x: r.X, y: r.Y}
	d.session = sess
	debugf("dragsort begin index=%d", i)

	if d.scene == nil {
		return
	}
	d.scene.CapturePointer(e.PointerID, d.container)
	sess.move = d.scene.OnPointerMove(func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			d.Move(ctx.Event())
		}
	})
	end := func(ctx PointerContext) {
		if ctx.PointerID == sess.pointerID {
			d.End()
		}
	}
	sess.up = d.scene.OnPointerUp(end)
	sess.cancel = d.scene.OnPointerCancel(end)
}

// Move follows the pointer with the clone, autoscrolls at the container's
// top and bottom edges, and reorders when the pointer is over a different
// child.
func (d *DragSort[T]) Move(e PointerEvent) {
	sess := d.session
	if sess == nil {
		return
	}
	dx, dy := e.X-sess.lastPointer.X, e.Y-sess.lastPointer.Y
	sess.lastPointer = e.Point()
	sess.clone.x += dx
	sess.clone.y += dy
	sess.clone.node.X, sess.clone.node.Y = sess.clone.x, sess.clone.y
	if d.stale() {
		d.Refresh()
	}

	switch {
	case e.Y < d.fatherRect.Top():
		if sess.scrollUpTimer == nil {
			d.stopScroll(false)
			sess.scrollUpTimer = NewTimer(d.settings.AutoScrollInterval, d.scrollUp)
			debugf("dragsort autoscroll up start")
		}
		return
	case e.Y > d.fatherRect.Bottom():
		if sess.scrollDownTimer == nil {
			d.stopScroll(false)
			sess.scrollDownTimer = NewTimer(d.settings.AutoScrollInterval, d.scrollDown)
			debugf("dragsort autoscroll down start")
		}
		return
	}
	if sess.scrollUpTimer != nil || sess.scrollDownTimer != nil {
		d.stopScroll(true)
	}

	for i, r := range d.childRects {
		if !r.ContainsStrict(e.X, e.Y) {
			continue
		}
		target := d.rectNodes[i]
		if target != sess.drag.node {
			d.reorder(i, target)
		}
		break
	}
}

// reorder moves the dragged child onto position i, occupied by target.
func (d *DragSort[T]) reorder(i int, target *Node) {
	sess := d.session
	sess.drop = sortSlot{node: target, lastIndex: i}

	before := make(map[*Node]Vec2, len(d.rectNodes))
	for j, n := range d.rectNodes {
		before[n] = Vec2{d.childRects[j].X + n.OffsetX, d.childRects[j].Y + n.OffsetY}
	}

	if sess.drag.index < i {
		d.container.InsertBefore(sess.drag.node, target.NextSibling())
		sess.drop.index = i - 1
	} else {
		d.container.InsertBefore(sess.drag.node, target)
		sess.drop.index = i + 1
	}
	from := sess.drag.lastIndex
	sess.drag.index = i
	sess.drag.lastIndex = i
	debugf("dragsort move %d -> %d", from, i)

	if from >= 0 && from < len(d.data) && i < len(d.data) {
		d.data = moveItem(d.data, from, i)
		if d.cfg.OnChange != nil {
			d.cfg.OnChange(append([]T(nil), d.data...))
		}
	} else {
		debugf("dragsort data has %d items, container has %d children", len(d.data), d.container.NumChildren())
	}
	d.scene.emitGesture(GestureEvent{Kind: GestureSort, EntityID: d.container.EntityID, From: from, To: i})

	d.Refresh()
	d.flip(before)
}

// flip plays the reorder animation: every child whose layout rect moved is
// offset back to where it was drawn and tweened to its new place.
func (d *DragSort[T]) flip(before map[*Node]Vec2) {
	dur := d.settings.flipSeconds()
	for j, n := range d.rectNodes {
		first, ok := before[n]
		if !ok {
			continue
		}
		last := d.childRects[j]
		if first.X == last.X+n.OffsetX && first.Y == last.Y+n.OffsetY {
			continue
		}
		n.OffsetX, n.OffsetY = first.X-last.X, first.Y-last.Y
		if dur <= 0 {
			n.OffsetX, n.OffsetY = 0, 0
			delete(d.flips, n)
			continue
		}
		d.flips[n] = TweenOffset(n, 0, 0, dur, ease.OutQuad)
	}
}

// moveItem returns a copy of s with the element at from moved to index to.
func moveItem[T any](s []T, from, to int) []T {
	out := make([]T, 0, len(s))
	v := s[from]
	for i, x := range s {
		if i != from {
			out = append(out, x)
		}
	}
	out = append(out, v)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = v
	return out
}

func (d *DragSort[T]) scrollUp() {
	sess := d.session
	if sess == nil {
		return
	}
	c := d.container
	if c.ScrollTop > 0 {
		dist := d.fatherRect.Top() - sess.lastPointer.Y
		c.SetScrollTop(c.ScrollTop - dist)
	} else {
		sess.scrollUpTimer.Stop()
		sess.scrollUpTimer = nil
		debugf("dragsort autoscroll up reached top")
	}
	d.Refresh()
}

func (d *DragSort[T]) scrollDown() {
	sess := d.session
	if sess == nil {
		return
	}
	c := d.container
	if c.ScrollTop < c.MaxScrollTop() {
		dist := sess.lastPointer.Y - d.fatherRect.Bottom()
		c.SetScrollTop(c.ScrollTop + dist)
	} else {
		sess.scrollDownTimer.Stop()
		sess.scrollDownTimer = nil
		debugf("dragsort autoscroll down reached bottom")
	}
	d.Refresh()
}

// stopScroll clears both autoscroll timers, refreshing the rect cache when
// asked to.
func (d *DragSort[T]) stopScroll(refresh bool) {
	sess := d.session
	sess.scrollUpTimer.Stop()
	sess.scrollDownTimer.Stop()
	sess.scrollUpTimer, sess.scrollDownTimer = nil, nil
	if refresh {
		d.Refresh()
	}
}

// End finishes the drag: the active style and clone are removed, timers are
// cleared, and the pointer and handlers are released. No-op when idle.
func (d *DragSort[T]) End() {
	sess := d.session
	if sess == nil {
		return
	}
	d.stopScroll(false)
	d.session = nil
	sess.drag.node.Background = sess.savedBg
	sess.clone.node.Dispose()
	sess.move.Remove()
	sess.up.Remove()
	sess.cancel.Remove()
	if d.scene != nil && d.scene.CapturedNode(sess.pointerID) == d.container {
		d.scene.ReleasePointer(sess.pointerID)
	}
	debugf("dragsort end index=%d", sess.drag.index)
	d.scene.emitGesture(GestureEvent{Kind: GestureEnd, EntityID: d.container.EntityID})
}

// Update advances the autoscroll timers and the reorder animations by dt
// seconds.
func (d *DragSort[T]) Update(dt float64) {
	if sess := d.session; sess != nil {
		// At most one of these is non-nil.
		sess.scrollUpTimer.Update(dt)
		sess.scrollDownTimer.Update(dt)
	}
	for n, g := range d.flips {
		g.Update(dt)
		if g.Done {
			delete(d.flips, n)
		}
	}
}
