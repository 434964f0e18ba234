package gizmo

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the node's affine matrix relative to its
// parent's content origin. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-W/2, -H/2) -> Rotate -> Translate(W/2, H/2) -> Translate(X+OffsetX, Y+OffsetY)
func computeLocalTransform(n *Node, withOffset bool) [6]float64 {
	tx, ty := n.X, n.Y
	if withOffset {
		tx += n.OffsetX
		ty += n.OffsetY
	}
	if n.Rotation == 0 {
		return [6]float64{1, 0, 0, 1, tx, ty}
	}
	sin, cos := sincosDeg(sanitizeDegrees(n.Rotation))
	hw, hh := n.Width/2, n.Height/2
	// Rotation about (hw, hh): p' = R(p - h) + h.
	return [6]float64{
		cos, sin, -sin, cos,
		hw - (cos*hw - sin*hh) + tx,
		hh - (sin*hw + cos*hh) + ty,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// worldTransform walks the parent chain and composes the node's world
// matrix. Fixed nodes start from identity. Each ancestor contributes its
// own transform followed by its scroll offset.
func (n *Node) worldTransform(withOffset bool) [6]float64 {
	local := computeLocalTransform(n, withOffset)
	if n.Fixed || n.Parent == nil {
		return local
	}
	p := n.Parent
	content := multiplyAffine(p.worldTransform(withOffset), [6]float64{1, 0, 0, 1, 0, -p.ScrollTop})
	return multiplyAffine(content, local)
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.worldTransform(true))
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform(true), lx, ly)
}

// Bounds returns the world-space axis-aligned bounding box of the node's
// transformed layout box, visual offsets included.
func (n *Node) Bounds() Rect {
	return aabb(n.worldTransform(true), n.Width, n.Height)
}

// LayoutBounds is like Bounds but ignores OffsetX/OffsetY on the node and its
// ancestors, so it reports where layout put the node even mid-animation.
func (n *Node) LayoutBounds() Rect {
	return aabb(n.worldTransform(false), n.Width, n.Height)
}

// Corners returns the node's four corners in world space, clockwise from
// the top-left of its unrotated box.
func (n *Node) Corners() [4]Vec2 {
	m := n.worldTransform(true)
	var out [4]Vec2
	for i, p := range [4][2]float64{{0, 0}, {n.Width, 0}, {n.Width, n.Height}, {0, n.Height}} {
		out[i].X, out[i].Y = transformPoint(m, p[0], p[1])
	}
	return out
}

func aabb(m [6]float64, w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x, y := transformPoint(m, p[0], p[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// --- Transform property setters ---

// SetPosition sets the node's layout X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetSize sets the node's layout width and height and relayouts the parent
// when it uses a flow layout.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	if n.Parent != nil {
		n.Parent.Relayout()
	}
}

// SetRotation sets the node's rotation in degrees.
func (n *Node) SetRotation(deg float64) {
	n.Rotation = deg
}

// SetOffset sets the node's visual offset.
func (n *Node) SetOffset(x, y float64) {
	n.OffsetX = x
	n.OffsetY = y
}
