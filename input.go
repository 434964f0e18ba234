package gizmo

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Pointer events ---

// PointerEvent is the engine-facing view of one pointer notification. X and
// Y are world coordinates; Target is the node the event was dispatched to
// (nil over empty space).
type PointerEvent struct {
	PointerID int
	Type      PointerType
	Button    MouseButton
	X, Y      float64
	Target    *Node
}

// Point returns the event position.
func (e PointerEvent) Point() Vec2 {
	return Vec2{e.X, e.Y}
}

// IsPrimary reports whether the event comes from a primary button. Touch and
// pen contacts are always primary.
func (e PointerEvent) IsPrimary() bool {
	return e.Type != PointerMouse || e.Button == MouseButtonLeft
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	button    MouseButton
	kind      PointerType
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerDown   []pointerHandler
	pointerUp     []pointerHandler
	pointerMove   []pointerHandler
	pointerCancel []pointerHandler
	click         []pointerHandler
	nextID        uint32
}

func (r *handlerRegistry) list(event EventType) *[]pointerHandler {
	switch event {
	case EventPointerDown:
		return &r.pointerDown
	case EventPointerUp:
		return &r.pointerUp
	case EventPointerMove:
		return &r.pointerMove
	case EventPointerCancel:
		return &r.pointerCancel
	case EventClick:
		return &r.click
	}
	return nil
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Safe to call on
// the zero handle and more than once.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	l := h.reg.list(h.event)
	if l == nil {
		return
	}
	*l = removePointerHandler(*l, h.id)
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

// --- Scene-level event registration ---

func (s *Scene) on(event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	l := s.handlers.list(event)
	*l = append(*l, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerMove, fn)
}

// OnPointerCancel registers a scene-level callback for pointer cancel events.
func (s *Scene) OnPointerCancel(fn func(PointerContext)) CallbackHandle {
	return s.on(EventPointerCancel, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.on(EventClick, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// CapturedNode returns the node capturing pointerID, or nil.
func (s *Scene) CapturedNode(pointerID int) *Node {
	if pointerID >= 0 && pointerID < maxPointers {
		return s.captured[pointerID]
	}
	return nil
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's layout box.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Invisible subtrees are skipped;
// non-interactable nodes are skipped but their children are still visited.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	for _, child := range sortedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) && !clippedAt(n, worldX, worldY) {
			return n
		}
	}
	return nil
}

// clippedAt reports whether an ancestor with Clip hides (x, y) from n. The
// walk stops at a Fixed node, which is drawn outside its ancestors' clips.
func clippedAt(n *Node, x, y float64) bool {
	for c := n; c.Parent != nil && !c.Fixed; c = c.Parent {
		if p := c.Parent; p.Clip && !p.Bounds().Contains(x, y) {
			return true
		}
	}
	return false
}

// HitTest returns the topmost interactable node at the given world point.
func (s *Scene) HitTest(x, y float64) *Node {
	return s.hitTest(x, y)
}

// sortedChildren returns n's children in ZIndex order, rebuilding the cached
// order when the tree changed. Uses insertion sort: stable, zero allocations
// once warmed up, and O(n) for the common already-sorted case.
func sortedChildren(n *Node) []*Node {
	if len(n.children) < 2 {
		return n.children
	}
	if !n.childrenSorted {
		nc := len(n.children)
		if cap(n.sortedChildren) < nc {
			n.sortedChildren = make([]*Node, nc)
		}
		n.sortedChildren = n.sortedChildren[:nc]
		copy(n.sortedChildren, n.children)
		for i := 1; i < nc; i++ {
			key := n.sortedChildren[i]
			j := i - 1
			for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
				n.sortedChildren[j+1] = n.sortedChildren[j]
				j--
			}
			n.sortedChildren[j+1] = key
		}
		n.childrenSorted = true
	}
	if len(n.sortedChildren) != len(n.children) {
		n.childrenSorted = false
		return sortedChildren(n)
	}
	return n.sortedChildren
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update to handle all mouse and touch
// input. Injected events take priority over the real mouse for the frame.
func (s *Scene) processInput() {
	mods := readModifiers()

	// Losing window focus mid-gesture aborts it, the way a browser sends
	// pointercancel.
	if !ebiten.IsFocused() {
		for i := range s.pointers {
			if s.pointers[i].down {
				s.CancelPointer(i)
			}
		}
		return
	}

	if !s.processInjectedInput(mods) {
		s.processMousePointer(mods)
	}
	s.processTouchPointers(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down keep the stored button so it cannot
	// change mid-interaction.
	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, PointerMouse, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, PointerTouch, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, PointerTouch, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, kind PointerType, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	// Determine target node: captured node or hit test.
	target := s.captured[pointerID]
	if target == nil {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.dispatch(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, kind, mods)
		}
		if target != nil {
			s.dispatch(EventPointerEnter, target, pointerID, wx, wy, button, kind, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.kind = kind
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		s.dispatch(EventPointerDown, target, pointerID, wx, wy, button, kind, mods)
	case !pressed && ps.down:
		s.dispatch(EventPointerUp, target, pointerID, wx, wy, ps.button, ps.kind, mods)
		if ps.hitNode != nil && ps.hitNode == target {
			s.dispatch(EventClick, target, pointerID, wx, wy, ps.button, ps.kind, mods)
		}
		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
	default:
		if wx != ps.lastX || wy != ps.lastY {
			b := button
			if ps.down {
				b = ps.button
			}
			s.dispatch(EventPointerMove, target, pointerID, wx, wy, b, kind, mods)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// CancelPointer aborts an in-progress press on pointerID: pointer cancel
// handlers fire, capture is released, and no click is generated.
func (s *Scene) CancelPointer(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &s.pointers[pointerID]
	if !ps.down {
		return
	}
	target := s.captured[pointerID]
	if target == nil {
		target = ps.hitNode
	}
	s.dispatch(EventPointerCancel, target, pointerID, ps.lastX, ps.lastY, ps.button, ps.kind, 0)
	s.captured[pointerID] = nil
	ps.down = false
	ps.hitNode = nil
}

// --- Event dispatch ---

// dispatch runs scene-level handlers, then the target's callback, then
// bubbles down/up/move/cancel/click to ancestors until a callback stops
// propagation. Enter and leave do not bubble.
func (s *Scene) dispatch(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton, kind PointerType, mods KeyModifiers) {
	var lx, ly float64
	var entityID uint32
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		entityID = node.EntityID
		userData = node.UserData
	}
	stopped := false
	ctx := PointerContext{
		Node: node, EntityID: entityID, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID, Type: kind, Modifiers: mods,
		stopped: &stopped,
	}

	// Scene-level handlers first. A handler may remove itself (or register
	// another) while running, so iterate over a snapshot.
	if l := s.handlers.list(event); l != nil && len(*l) > 0 {
		for _, h := range slices.Clone(*l) {
			h.fn(ctx)
		}
	}

	for n := node; n != nil && !stopped; n = n.Parent {
		if fn := nodeCallback(n, event); fn != nil {
			ctx.CurrentNode = n
			fn(ctx)
		}
		if event == EventPointerEnter || event == EventPointerLeave {
			break
		}
	}

	s.emitInteractionEvent(event, node, wx, wy, lx, ly, button, mods)
}

func nodeCallback(n *Node, event EventType) func(PointerContext) {
	switch event {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventPointerCancel:
		return n.OnPointerCancel
	case EventClick:
		return n.OnClick
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, wx, wy, lx, ly float64,
	button MouseButton, mods KeyModifiers) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      eventType,
		EntityID:  node.EntityID,
		GlobalX:   wx,
		GlobalY:   wy,
		LocalX:    lx,
		LocalY:    ly,
		Button:    button,
		Modifiers: mods,
	})
}
