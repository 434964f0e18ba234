package gizmo

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders the scene tree onto screen in painter order: parents before
// children, siblings by ZIndex then insertion order. Fixed nodes are drawn in
// screen space wherever they sit in the tree.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawNode(screen, screen, s.root, identityTransform, 1)
}

// drawNode draws n onto dst, or onto the unclipped screen when n is Fixed.
func (s *Scene) drawNode(screen, dst *ebiten.Image, n *Node, parent [6]float64, parentAlpha float64) {
	if !n.Visible {
		return
	}
	if n.beforeDraw != nil {
		n.beforeDraw()
	}
	local := computeLocalTransform(n, true)
	m := multiplyAffine(parent, local)
	if n.Fixed {
		m = local
		dst = screen
	}
	alpha := parentAlpha * n.Alpha

	fill := n.Color
	if n.Background.A > 0 {
		fill = n.Background
	}
	switch n.Type {
	case NodeTypeBox:
		drawQuad(dst, solidImage(), m, n.Width, n.Height, fill, alpha)
	case NodeTypeContainer:
		if n.Background.A > 0 {
			drawQuad(dst, solidImage(), m, n.Width, n.Height, n.Background, alpha)
		}
	case NodeTypeImage:
		if n.Background.A > 0 {
			drawQuad(dst, solidImage(), m, n.Width, n.Height, n.Background, alpha)
		}
		if n.customImage != nil {
			drawQuad(dst, n.customImage, m, n.Width, n.Height, n.Color, alpha)
		}
	}

	if len(n.children) == 0 {
		return
	}
	childDst := dst
	if n.Clip {
		b := aabb(m, n.Width, n.Height)
		r := image.Rect(int(b.X), int(b.Y), int(b.Right()+0.5), int(b.Bottom()+0.5))
		childDst = dst.SubImage(r).(*ebiten.Image)
	}
	content := multiplyAffine(m, [6]float64{1, 0, 0, 1, 0, -n.ScrollTop})
	for _, c := range sortedChildren(n) {
		s.drawNode(screen, childDst, c, content, alpha)
	}
}

// drawQuad draws img stretched to w x h under the affine matrix m, tinted by
// c with the given extra alpha.
func drawQuad(dst, img *ebiten.Image, m [6]float64, w, h float64, c Color, alpha float64) {
	a := c.A * alpha
	if a <= 0 || w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	op.GeoM.Concat(g)
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}
