package gizmo

// Direction is the main axis of a FlowLayout.
type Direction uint8

const (
	Column Direction = iota // children stack top to bottom
	Row                     // children stack left to right
)

// FlowLayout stacks a node's children along one axis in child order, the
// way block or inline-block elements flow inside a container. Fixed children
// are skipped.
type FlowLayout struct {
	Direction Direction
	Gap       float64
	Padding   float64
}

// Relayout repositions n's children when n has a flow layout.
// Called automatically by the tree operations.
func (n *Node) Relayout() {
	f := n.Flow
	if f == nil {
		return
	}
	pos := f.Padding
	for _, c := range n.children {
		if c.Fixed {
			continue
		}
		if f.Direction == Row {
			c.X, c.Y = pos, f.Padding
			pos += c.Width + f.Gap
		} else {
			c.X, c.Y = f.Padding, pos
			pos += c.Height + f.Gap
		}
	}
}

// ClientHeight is the visible height of the node's content area.
func (n *Node) ClientHeight() float64 {
	return n.Height
}

// ScrollHeight is the height of the node's content, never less than its
// client height.
func (n *Node) ScrollHeight() float64 {
	var bottom float64
	for _, c := range n.children {
		if c.Fixed {
			continue
		}
		if b := c.Y + c.Height; b > bottom {
			bottom = b
		}
	}
	if n.Flow != nil {
		bottom += n.Flow.Padding
	}
	if bottom < n.Height {
		return n.Height
	}
	return bottom
}

// MaxScrollTop returns the largest valid ScrollTop.
func (n *Node) MaxScrollTop() float64 {
	return n.ScrollHeight() - n.ClientHeight()
}

// SetScrollTop sets ScrollTop clamped to [0, MaxScrollTop].
func (n *Node) SetScrollTop(v float64) {
	if m := n.MaxScrollTop(); v > m {
		v = m
	}
	if v < 0 {
		v = 0
	}
	n.ScrollTop = v
}
