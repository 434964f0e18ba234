package gizmo

import (
	"fmt"
	"os"
)

// debugf prints a [gizmo]-prefixed line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[gizmo] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("gizmo debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}
