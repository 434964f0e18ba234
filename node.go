package gizmo

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext carries pointer event data. Node is the node the event was
// dispatched to; CurrentNode is the node whose callback is running, which
// differs from Node while the event bubbles through ancestors.
type PointerContext struct {
	Node        *Node
	CurrentNode *Node
	EntityID    uint32
	UserData    any
	GlobalX     float64
	GlobalY     float64
	LocalX      float64
	LocalY      float64
	Button      MouseButton
	PointerID   int
	Type        PointerType
	Modifiers   KeyModifiers

	stopped *bool
}

// StopPropagation keeps the event from bubbling to further ancestors.
func (c PointerContext) StopPropagation() {
	if c.stopped != nil {
		*c.stopped = true
	}
}

// Event converts the context into the PointerEvent consumed by the engines.
func (c PointerContext) Event() PointerEvent {
	return PointerEvent{
		PointerID: c.PointerID,
		Type:      c.Type,
		Button:    c.Button,
		X:         c.GlobalX,
		Y:         c.GlobalY,
		Target:    c.Node,
	}
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, gizmo is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene tree element the engines operate on. It plays the part a
// DOM element plays in a browser: it has a layout box, an optional rotation
// about its own center, a visual offset that does not affect layout, a scroll
// position for its children, and an optional flow layout that stacks its
// children.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout box, relative to the parent's content origin.
	X, Y          float64
	Width, Height float64
	// Rotation in degrees, clockwise, about the center of the layout box.
	Rotation float64
	// OffsetX and OffsetY translate the node visually without affecting
	// layout. Used for FLIP animation and dragged clones.
	OffsetX, OffsetY float64

	// Fixed positions the node in scene coordinates, ignoring ancestors.
	Fixed bool

	// ScrollTop shifts the children up by this many pixels.
	ScrollTop float64
	// Clip limits drawing of the children to the node's bounds.
	Clip bool
	// Flow, when set, positions children in order along one axis.
	Flow *FlowLayout

	// Appearance
	Color      Color
	Background Color // drawn instead of Color when its alpha is non-zero
	Alpha      float64
	ZIndex     int
	Cursor     Cursor

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Metadata
	UserData any
	EntityID uint32

	// Hit testing
	HitShape HitShape

	customImage *ebiten.Image

	// Per-node callbacks (nil by default)
	OnPointerDown   func(PointerContext)
	OnPointerUp     func(PointerContext)
	OnPointerMove   func(PointerContext)
	OnPointerCancel func(PointerContext)
	OnClick         func(PointerContext)
	OnPointerEnter  func(PointerContext)
	OnPointerLeave  func(PointerContext)
	OnUpdate        func(dt float64)

	// beforeDraw lets widgets that own an image repaint it lazily.
	beforeDraw func()
	// onChildAdded runs after a child is inserted, moves included.
	onChildAdded func(child *Node)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.childrenSorted = true
}

// NewContainer creates a container node. Containers are hit-testable only
// when they have a size or a HitShape.
func NewContainer(name string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = ColorNone
	return n
}

// NewBox creates a solid-color rectangle.
func NewBox(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeBox, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewImageNode creates a node that displays img stretched to its box.
func NewImageNode(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, customImage: img}
	nodeDefaults(n)
	if img != nil {
		b := img.Bounds()
		n.Width, n.Height = float64(b.Dx()), float64(b.Dy())
	}
	return n
}

// SetCustomImage sets the image displayed by an image node.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// CustomImage returns the node's image, or nil if not set.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// SetTransform sets Rotation from a CSS-style transform string.
// Strings without a parsable "deg" token reset the rotation to 0.
func (n *Node) SetTransform(transform string) {
	n.Rotation = ParseRotation(transform)
}

// SetBounds sets the layout position and size in one call.
func (n *Node) SetBounds(x, y, w, h float64) {
	n.X, n.Y, n.Width, n.Height = x, y, w, h
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild. When child is
// already a child of n, index refers to the list before removal.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("gizmo: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("gizmo: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("gizmo: child index out of range")
	}
	switch old := child.Parent; {
	case old == n:
		if n.IndexOf(child) < index {
			index--
		}
		n.detach(child)
	case old != nil:
		old.detach(child)
		old.Relayout()
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	if n.onChildAdded != nil {
		n.onChildAdded(child)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	n.Relayout()
}

// InsertBefore inserts child immediately before ref, or appends it when ref
// is nil. Mirrors the DOM operation of the same name.
// Panics if ref is not a child of n.
func (n *Node) InsertBefore(child, ref *Node) {
	if ref == nil {
		n.AddChild(child)
		return
	}
	if ref.Parent != n {
		panic("gizmo: reference node is not a child of this node")
	}
	n.AddChildAt(child, n.IndexOf(ref))
}

// NextSibling returns the node after n in its parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.IndexOf(n)
	if i < 0 || i+1 >= len(n.Parent.children) {
		return nil
	}
	return n.Parent.children[i+1]
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("gizmo: child's parent is not this node")
	}
	n.detach(child)
	n.Relayout()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the index of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Clone returns a deep copy of n and its subtree with fresh IDs and no
// parent. Callbacks are not copied, so a clone never reacts to input.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:        n.Name,
		Type:        n.Type,
		X:           n.X,
		Y:           n.Y,
		Width:       n.Width,
		Height:      n.Height,
		Rotation:    n.Rotation,
		OffsetX:     n.OffsetX,
		OffsetY:     n.OffsetY,
		Fixed:       n.Fixed,
		ScrollTop:   n.ScrollTop,
		Clip:        n.Clip,
		Color:       n.Color,
		Background:  n.Background,
		Alpha:       n.Alpha,
		ZIndex:      n.ZIndex,
		Cursor:      n.Cursor,
		Visible:     n.Visible,
		HitShape:    n.HitShape,
		UserData:    n.UserData,
		customImage: n.customImage,
	}
	c.ID = nextNodeID()
	if n.Flow != nil {
		f := *n.Flow
		c.Flow = &f
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.Parent = c
		c.children = append(c.children, cc)
	}
	c.childrenSorted = len(c.children) < 2
	return c
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.customImage = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnPointerCancel = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
	n.OnUpdate = nil
	n.beforeDraw = nil
	n.onChildAdded = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detach removes child from n.children and clears child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			break
		}
	}
	child.Parent = nil
	n.childrenSorted = false
}
