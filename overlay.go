package gizmo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"
)

// OverlayStatus selects what a LoadingOverlay shows next to its info text.
type OverlayStatus uint8

const (
	OverlayLoading OverlayStatus = iota // animated ellipsis
	OverlaySuccess
	OverlayFailed
	OverlayInfo // info text only
)

var overlayStatusNames = [...]string{"loading", "success", "failed", "info"}

func (s OverlayStatus) String() string {
	if int(s) < len(overlayStatusNames) {
		return overlayStatusNames[s]
	}
	return "unknown"
}

// ParseOverlayStatus maps "loading", "success", "failed" or "info" to its
// status.
func ParseOverlayStatus(s string) (OverlayStatus, error) {
	for i, name := range overlayStatusNames {
		if name == s {
			return OverlayStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown overlay status %q", s)
}

// OverlayConfig configures a LoadingOverlay. Empty fields fall back to
// DefaultSettings().Overlay.
type OverlayConfig struct {
	Info     string
	Status   OverlayStatus
	Color    string // text color, hex
	BgColor  string // background color, hex
	InfoSize float64
	ZIndex   int
	Width    float64
	Height   float64
}

// Cell size of the ebitenutil debug font.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// LoadingOverlay is a fixed, input-blocking panel with a status line. Its
// Node can be added anywhere in the tree.
type LoadingOverlay struct {
	Node *Node

	label   *Node
	info    string
	status  OverlayStatus
	scale   float64
	cols    int
	elapsed float64
	dots    int
	dirty   bool
	fade    *TweenGroup
}

// NewLoadingOverlay builds an overlay covering cfg.Width x cfg.Height.
func NewLoadingOverlay(name string, cfg OverlayConfig) (*LoadingOverlay, error) {
	def := DefaultSettings().Overlay
	if cfg.Info == "" {
		cfg.Info = def.Info
	}
	if cfg.Color == "" {
		cfg.Color = def.Color
	}
	if cfg.BgColor == "" {
		cfg.BgColor = def.BgColor
	}
	if cfg.InfoSize <= 0 {
		cfg.InfoSize = def.InfoSize
	}
	if cfg.ZIndex == 0 {
		cfg.ZIndex = def.ZIndex
	}
	fg, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("loading overlay %s: %w", name, err)
	}
	bg, err := ParseColor(cfg.BgColor)
	if err != nil {
		return nil, fmt.Errorf("loading overlay %s: %w", name, err)
	}

	n := NewContainer(name, cfg.Width, cfg.Height)
	n.Background = bg
	n.Fixed = true
	n.ZIndex = cfg.ZIndex
	n.Interactable = true
	n.OnPointerDown = func(ctx PointerContext) { ctx.StopPropagation() }

	label := NewImageNode(name+"_label", nil)
	label.Color = fg
	n.AddChild(label)

	o := &LoadingOverlay{
		Node:   n,
		label:  label,
		info:   cfg.Info,
		status: cfg.Status,
		scale:  cfg.InfoSize / debugGlyphH,
		dirty:  true,
	}
	n.OnUpdate = o.update
	label.beforeDraw = o.repaint
	o.layoutLabel()
	return o, nil
}

// Status returns the current status.
func (o *LoadingOverlay) Status() OverlayStatus { return o.status }

// Info returns the current info text.
func (o *LoadingOverlay) Info() string { return o.info }

// SetStatus changes the status line.
func (o *LoadingOverlay) SetStatus(s OverlayStatus) {
	if s == o.status {
		return
	}
	o.status = s
	o.dots = 0
	o.elapsed = 0
	o.dirty = true
	o.layoutLabel()
}

// SetInfo changes the info text.
func (o *LoadingOverlay) SetInfo(info string) {
	if info == o.info {
		return
	}
	o.info = info
	o.dirty = true
	o.layoutLabel()
}

// Text returns the line the overlay currently shows.
func (o *LoadingOverlay) Text() string {
	switch o.status {
	case OverlayLoading:
		return o.info + strings.Repeat(".", o.dots)
	case OverlaySuccess:
		return "[OK] " + o.info
	case OverlayFailed:
		return "[FAILED] " + o.info
	default:
		return o.info
	}
}

// Resize changes the covered area and recenters the text.
func (o *LoadingOverlay) Resize(w, h float64) {
	o.Node.Width, o.Node.Height = w, h
	o.layoutLabel()
}

// Show makes the overlay visible at full opacity.
func (o *LoadingOverlay) Show() {
	o.fade = nil
	o.Node.Alpha = 1
	o.Node.Visible = true
}

// Hide fades the overlay out over seconds, then hides it. A non-positive
// duration hides it at once.
func (o *LoadingOverlay) Hide(seconds float32) {
	if seconds <= 0 {
		o.fade = nil
		o.Node.Visible = false
		return
	}
	o.fade = TweenAlpha(o.Node, 0, seconds, ease.OutQuad)
}

func (o *LoadingOverlay) update(dt float64) {
	if o.fade != nil {
		o.fade.Update(dt)
		if o.fade.Done {
			o.fade = nil
			o.Node.Visible = false
		}
	}
	if o.status != OverlayLoading {
		return
	}
	o.elapsed += dt
	if o.elapsed >= 0.4 {
		o.elapsed = 0
		o.dots = (o.dots + 1) % 4
		o.dirty = true
	}
}

// layoutLabel sizes the label for the longest text the current state can
// show, so the ellipsis does not shift it, and centers it.
func (o *LoadingOverlay) layoutLabel() {
	cols := utf8.RuneCountInString(o.Text())
	if o.status == OverlayLoading {
		cols = utf8.RuneCountInString(o.info) + 3
	}
	if cols != o.cols {
		o.cols = cols
		o.dirty = true
	}
	w := float64(cols*debugGlyphW) * o.scale
	h := debugGlyphH * o.scale
	o.label.Width, o.label.Height = w, h
	o.label.X = (o.Node.Width - w) / 2
	o.label.Y = (o.Node.Height - h) / 2
}

func (o *LoadingOverlay) repaint() {
	if !o.dirty {
		return
	}
	o.dirty = false
	if o.cols == 0 {
		return
	}
	img := o.label.CustomImage()
	if img == nil || img.Bounds().Dx() != o.cols*debugGlyphW {
		img = ebiten.NewImage(o.cols*debugGlyphW, debugGlyphH)
		o.label.SetCustomImage(img)
	}
	img.Clear()
	ebitenutil.DebugPrint(img, o.Text())
}
