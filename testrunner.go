package gizmo

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a gesture script.
type testStep struct {
	Action string  `json:"action"`
	Button string  `json:"button,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a gesture script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer events across frames so that a whole
// gesture can be replayed against a Scene. Attach it via SetTestRunner.
//
// Recognized actions: press, move, release, cancel, click, drag, wait.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON gesture script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "cancel", "click", "drag", "wait":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func parseButton(s string) (MouseButton, error) {
	switch s {
	case "", "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	case "middle":
		return MouseButtonMiddle, nil
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called at the start of every Update or Tick.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		b, _ := parseButton(st.Button)
		s.InjectButtonPress(st.X, st.Y, b)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "cancel":
		s.InjectCancel()
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
