package gizmo

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the user resize the window; the scene is notified
	// through Scene.OnResize.
	Resizable bool
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene  *Scene
	cfg    RunConfig
	cursor Cursor
}

func (g *gameShell) Update() error {
	g.scene.Update()
	if c := g.scene.HoverCursor(); c != g.cursor {
		g.cursor = c
		ebiten.SetCursorShape(c.EbitenShape())
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.cfg.Width, g.cfg.Height
	if g.cfg.Resizable {
		w, h = outsideWidth, outsideHeight
	}
	g.scene.Layout(w, h)
	return w, h
}

// Run opens a window and drives scene until the window is closed.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}

// HoverCursor returns the cursor of the node under the mouse, or of the node
// capturing it. The first ancestor with a non-default cursor wins.
func (s *Scene) HoverCursor() Cursor {
	n := s.captured[0]
	if n == nil {
		n = s.pointers[0].hoverNode
	}
	for ; n != nil; n = n.Parent {
		if n.Cursor != CursorDefault {
			return n.Cursor
		}
	}
	return CursorDefault
}
