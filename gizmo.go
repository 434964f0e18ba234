package gizmo

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorNone is the zero color. A node whose Background is ColorNone draws
// its Color unchanged.
var ColorNone = Color{}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for points, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// whitePixel is a 1x1 white image scaled up to draw solid rectangles.
// Allocated on first draw so that headless callers never touch the GPU.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the minimum X edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the minimum Y edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the maximum X edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum Y edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsStrict is like Contains but excludes the edges. Adjacent siblings in
// a flow layout share an edge, so a point on it belongs to neither.
func (r Rect) ContainsStrict(x, y float64) bool {
	return x > r.X && x < r.X+r.Width &&
		y > r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node; draws its Background if set
	NodeTypeBox                       // solid-color rectangle of Width x Height
	NodeTypeImage                     // renders a custom *ebiten.Image
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown   EventType = iota // fires when a pointer button is pressed
	EventPointerUp                      // fires when a pointer button is released
	EventPointerMove                    // fires when the pointer moves, pressed or not
	EventPointerCancel                  // fires when the host aborts a pointer interaction
	EventClick                          // fires on press then release over the same node
	EventPointerEnter                   // fires when the pointer enters a node's bounds
	EventPointerLeave                   // fires when the pointer leaves a node's bounds
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// PointerType identifies the device that produced a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Handle identifies one of the eight resize handles around an element.
type Handle uint8

const (
	HandleN Handle = iota
	HandleS
	HandleE
	HandleW
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

// Handles lists every handle in a stable order.
var Handles = [8]Handle{HandleN, HandleS, HandleE, HandleW, HandleNW, HandleNE, HandleSW, HandleSE}

var handleNames = [...]string{"n", "s", "e", "w", "nw", "ne", "sw", "se"}

func (h Handle) String() string {
	if int(h) < len(handleNames) {
		return handleNames[h]
	}
	return "unknown"
}

// IsCorner reports whether h is one of the four corner handles.
func (h Handle) IsCorner() bool {
	return h >= HandleNW && h <= HandleSE
}

// ParseHandle maps a compass name ("n", "se", ...) to its Handle.
func ParseHandle(s string) (Handle, bool) {
	for i, name := range handleNames {
		if name == s {
			return Handle(i), true
		}
	}
	return 0, false
}

// Cursor is a pointer shape hint a host can map to its own cursor images.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorNResize
	CursorNEResize
	CursorEResize
	CursorSEResize
	CursorSResize
	CursorSWResize
	CursorWResize
	CursorNWResize
	CursorGrab
	CursorGrabbing
)

var cursorNames = [...]string{
	"default", "n-resize", "ne-resize", "e-resize", "se-resize",
	"s-resize", "sw-resize", "w-resize", "nw-resize", "grab", "grabbing",
}

func (c Cursor) String() string {
	if int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return "unknown"
}

// EbitenShape returns the closest ebiten.CursorShapeType for c.
func (c Cursor) EbitenShape() ebiten.CursorShapeType {
	switch c {
	case CursorNResize, CursorSResize:
		return ebiten.CursorShapeNSResize
	case CursorEResize, CursorWResize:
		return ebiten.CursorShapeEWResize
	case CursorNEResize, CursorSWResize:
		return ebiten.CursorShapeNESWResize
	case CursorNWResize, CursorSEResize:
		return ebiten.CursorShapeNWSEResize
	case CursorGrab, CursorGrabbing:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}
