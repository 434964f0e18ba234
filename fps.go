package gizmo

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a fixed node in the top-left corner that shows the
// current FPS and TPS, refreshed about twice a second.
func NewFPSWidget() *Node {
	node := NewImageNode("fps_widget", nil)
	node.Width, node.Height = 100, 32
	node.Fixed = true
	node.ZIndex = 1 << 30

	var since float64
	dirty := true
	node.OnUpdate = func(dt float64) {
		since += dt
		if since >= 0.5 {
			since = 0
			dirty = true
		}
	}
	node.beforeDraw = func() {
		if !dirty {
			return
		}
		dirty = false
		img := node.CustomImage()
		if img == nil {
			img = ebiten.NewImage(100, 32)
			node.SetCustomImage(img)
		}
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
