package gizmo

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenOffset, TweenPosition,
// TweenAlpha, TweenColor, TweenRotation) and call Update(dt) each frame, or
// hand it to Scene.AddUpdater. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	fields   [4]*float64
	target   *Node
	duration float32
	Done     bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Set(g.duration)
		*g.fields[i] = float64(val)
	}
	g.Done = true
}

type tweenField struct {
	field *float64
	to    float64
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields ...tweenField) *TweenGroup {
	g := &TweenGroup{target: node, duration: duration}
	for _, f := range fields {
		g.tweens[g.count] = gween.New(float32(*f.field), float32(f.to), duration, fn)
		g.fields[g.count] = f.field
		g.count++
	}
	return g
}

// TweenOffset animates node.OffsetX and node.OffsetY to the given values. The
// drag-sort FLIP step starts a node at the inverted offset and tweens it to
// zero.
func TweenOffset(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.OffsetX, toX},
		tweenField{&node.OffsetY, toY})
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.X, toX},
		tweenField{&node.Y, toY})
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.Color.R, to.R},
		tweenField{&node.Color.G, to.G},
		tweenField{&node.Color.B, to.B},
		tweenField{&node.Color.A, to.A})
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.Alpha, to})
}

// TweenRotation animates node.Rotation (degrees).
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.Rotation, to})
}
