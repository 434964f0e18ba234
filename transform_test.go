package gizmo

import (
	"math"
	"testing"
)

func assertRect(t *testing.T, label string, got, want Rect) {
	t.Helper()
	if !near(got.X, want.X, 1e-9) || !near(got.Y, want.Y, 1e-9) ||
		!near(got.Width, want.Width, 1e-9) || !near(got.Height, want.Height, 1e-9) {
		t.Errorf("%s = %+v, want %+v", label, got, want)
	}
}

func TestBoundsUnrotated(t *testing.T) {
	root := NewContainer("root", 0, 0)
	root.SetPosition(10, 20)
	n := NewBox("n", 100, 50, ColorWhite)
	n.SetPosition(5, 5)
	root.AddChild(n)
	assertRect(t, "Bounds", n.Bounds(), Rect{15, 25, 100, 50})
}

func TestBoundsRotatesAboutCenter(t *testing.T) {
	tests := []struct {
		deg  float64
		want Rect
	}{
		{0, Rect{0, 0, 100, 50}},
		{90, Rect{25, -25, 50, 100}},
		{180, Rect{0, 0, 100, 50}},
		{-90, Rect{25, -25, 50, 100}},
	}
	for _, tt := range tests {
		n := NewBox("n", 100, 50, ColorWhite)
		n.SetRotation(tt.deg)
		assertRect(t, "Bounds", n.Bounds(), tt.want)
		c := n.Bounds().Center()
		assertVec(t, "center", c, Vec2{50, 25}, 1e-9)
	}
}

func TestCornersClockwise(t *testing.T) {
	n := NewBox("n", 100, 50, ColorWhite)
	n.SetRotation(90)
	got := n.Corners()
	want := [4]Vec2{{75, -25}, {75, 75}, {25, 75}, {25, -25}}
	for i := range want {
		assertVec(t, "corner", got[i], want[i], 1e-9)
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	root := NewContainer("root", 0, 0)
	root.SetPosition(7, -3)
	mid := NewContainer("mid", 200, 200)
	mid.SetPosition(40, 10)
	mid.SetRotation(30)
	root.AddChild(mid)
	n := NewBox("n", 20, 10, ColorWhite)
	n.SetPosition(5, 6)
	n.SetRotation(-75)
	n.SetOffset(2, 1)
	mid.AddChild(n)

	for _, p := range []Vec2{{0, 0}, {10, 5}, {-4, 30}} {
		wx, wy := n.LocalToWorld(p.X, p.Y)
		lx, ly := n.WorldToLocal(wx, wy)
		assertVec(t, "round trip", Vec2{lx, ly}, p, 1e-9)
	}
}

func TestScrollTopShiftsChildren(t *testing.T) {
	list := NewContainer("list", 100, 100)
	list.SetPosition(0, 50)
	item := NewBox("item", 100, 30, ColorWhite)
	item.SetPosition(0, 60)
	list.AddChild(item)
	list.ScrollTop = 40
	assertRect(t, "Bounds", item.Bounds(), Rect{0, 70, 100, 30})
}

func TestFixedIgnoresAncestors(t *testing.T) {
	p := NewContainer("p", 0, 0)
	p.SetPosition(100, 100)
	p.SetRotation(45)
	n := NewBox("n", 10, 10, ColorWhite)
	n.SetPosition(3, 4)
	n.Fixed = true
	p.AddChild(n)
	assertRect(t, "Bounds", n.Bounds(), Rect{3, 4, 10, 10})
}

func TestLayoutBoundsIgnoresOffset(t *testing.T) {
	p := NewContainer("p", 0, 0)
	p.SetOffset(5, 5)
	n := NewBox("n", 10, 10, ColorWhite)
	n.SetPosition(20, 30)
	n.SetOffset(-8, 12)
	p.AddChild(n)
	assertRect(t, "Bounds", n.Bounds(), Rect{17, 47, 10, 10})
	assertRect(t, "LayoutBounds", n.LayoutBounds(), Rect{20, 30, 10, 10})
}

func TestNonFiniteRotationIgnored(t *testing.T) {
	n := NewBox("n", 10, 10, ColorWhite)
	n.Rotation = math.Inf(1)
	assertRect(t, "Bounds", n.Bounds(), Rect{0, 0, 10, 10})
}

func TestInvertAffineSingular(t *testing.T) {
	got := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	if got != identityTransform {
		t.Errorf("invertAffine(singular) = %v, want identity", got)
	}
}

func TestSetSizeRelayoutsParent(t *testing.T) {
	p := NewContainer("p", 100, 200)
	p.Flow = &FlowLayout{}
	a, b := NewBox("a", 100, 20, ColorWhite), NewBox("b", 100, 20, ColorWhite)
	p.AddChild(a)
	p.AddChild(b)
	a.SetSize(100, 35)
	if b.Y != 35 {
		t.Errorf("b.Y = %v, want 35", b.Y)
	}
}
