package gizmo

import (
	"strings"
	"testing"
)

func withDebug(t *testing.T) {
	t.Helper()
	globalDebug = true
	t.Cleanup(func() { globalDebug = false })
}

func TestDebugCheckDisposedPanics(t *testing.T) {
	withDebug(t)
	p := NewContainer("p", 0, 0)
	n := NewContainer("gone", 0, 0)
	n.Dispose()

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, `"gone"`) {
			t.Errorf("panic = %v, want a message naming the node", r)
		}
	}()
	p.AddChild(n)
}

func TestDisposedNodeWithoutDebug(t *testing.T) {
	p := NewContainer("p", 0, 0)
	n := NewContainer("gone", 0, 0)
	n.Dispose()
	p.AddChild(n)
	if n.Parent != p {
		t.Error("release mode should not check disposal")
	}
}

func TestDebugTreeChecksDoNotPanic(t *testing.T) {
	withDebug(t)
	n := NewContainer("n", 0, 0)
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewContainer("c", 0, 0)
		n.AddChild(c)
		n = c
	}
	wide := NewContainer("wide", 0, 0)
	for i := 0; i < debugMaxChildCount+1; i++ {
		wide.AddChild(NewContainer("c", 0, 0))
	}
	if wide.NumChildren() != debugMaxChildCount+1 {
		t.Errorf("NumChildren = %d", wide.NumChildren())
	}
}
