package gizmo

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenOffsetReachesTarget(t *testing.T) {
	n := NewBox("n", 10, 10, ColorWhite)
	n.SetOffset(0, 50)
	g := TweenOffset(n, 0, 0, 0.15, ease.OutQuad)

	g.Update(0.05)
	if g.Done {
		t.Fatal("done too early")
	}
	if n.OffsetY <= 0 || n.OffsetY >= 50 {
		t.Errorf("mid-tween OffsetY = %v, want in (0, 50)", n.OffsetY)
	}
	g.Update(0.2)
	if !g.Done {
		t.Error("not done after the duration elapsed")
	}
	if n.OffsetX != 0 || n.OffsetY != 0 {
		t.Errorf("offset = (%v, %v), want (0, 0)", n.OffsetX, n.OffsetY)
	}
}

func TestTweenConstructors(t *testing.T) {
	tests := []struct {
		name  string
		start func(n *Node) *TweenGroup
		check func(n *Node) bool
	}{
		{"position", func(n *Node) *TweenGroup { return TweenPosition(n, 30, 40, 1, ease.Linear) },
			func(n *Node) bool { return n.X == 30 && n.Y == 40 }},
		{"alpha", func(n *Node) *TweenGroup { return TweenAlpha(n, 0, 1, ease.Linear) },
			func(n *Node) bool { return n.Alpha == 0 }},
		{"rotation", func(n *Node) *TweenGroup { return TweenRotation(n, 90, 1, ease.InOutQuad) },
			func(n *Node) bool { return n.Rotation == 90 }},
		{"color", func(n *Node) *TweenGroup { return TweenColor(n, Color{0, 0.5, 1, 0.25}, 1, ease.Linear) },
			func(n *Node) bool { return n.Color == Color{0, 0.5, 1, 0.25} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewBox("n", 10, 10, ColorWhite)
			g := tt.start(n)
			g.Update(2)
			if !g.Done || !tt.check(n) {
				t.Errorf("done=%v node=%+v", g.Done, n)
			}
		})
	}
}

func TestTweenFinish(t *testing.T) {
	n := NewBox("n", 10, 10, ColorWhite)
	g := TweenPosition(n, 100, -20, 5, ease.OutQuad)
	g.Update(0.1)
	g.Finish()
	if !g.Done || n.X != 100 || n.Y != -20 {
		t.Errorf("after Finish done=%v pos=(%v, %v)", g.Done, n.X, n.Y)
	}
}

func TestTweenStopsOnDisposedTarget(t *testing.T) {
	n := NewBox("n", 10, 10, ColorWhite)
	g := TweenAlpha(n, 0, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween on disposed node should be done")
	}
	if n.Alpha != 1 {
		t.Errorf("disposed node written: Alpha = %v", n.Alpha)
	}
}
