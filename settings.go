package gizmo

import (
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Settings holds the tunables shared by the engines and the overlay. The zero
// value is not useful; start from DefaultSettings.
type Settings struct {
	// FlipMillis is the duration of the drag-sort reorder animation.
	FlipMillis float64 `toml:"flip_ms"`
	// AutoScrollInterval is the seconds between autoscroll steps. 0 scrolls
	// once per update.
	AutoScrollInterval float64 `toml:"autoscroll_interval"`
	// ActiveColor is the background of the child being dragged, as hex.
	ActiveColor string `toml:"active_color"`
	CloneAlpha  float64 `toml:"clone_alpha"`
	CloneZIndex int     `toml:"clone_z_index"`

	Overlay OverlaySettings `toml:"overlay"`
}

// OverlaySettings are the loading overlay defaults.
type OverlaySettings struct {
	Info     string  `toml:"info"`
	Color    string  `toml:"color"`
	BgColor  string  `toml:"bg_color"`
	InfoSize float64 `toml:"info_size"`
	ZIndex   int     `toml:"z_index"`
}

// DefaultSettings returns the built-in tunables.
func DefaultSettings() Settings {
	return Settings{
		FlipMillis:         150,
		AutoScrollInterval: 0,
		ActiveColor:        "#C8EBFB",
		CloneAlpha:         0.8,
		CloneZIndex:        math.MaxInt32,
		Overlay: OverlaySettings{
			Info:     "加载中",
			Color:    "#FFFFFF",
			BgColor:  "#06164d",
			InfoSize: 40,
			ZIndex:   math.MaxInt32,
		},
	}
}

// DecodeSettings parses TOML on top of DefaultSettings, so keys missing from
// data keep their default.
func DecodeSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// LoadSettings reads a TOML settings file on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

func (s Settings) validate() error {
	for _, c := range []string{s.ActiveColor, s.Overlay.Color, s.Overlay.BgColor} {
		if _, err := ParseColor(c); err != nil {
			return err
		}
	}
	if s.FlipMillis < 0 {
		return fmt.Errorf("flip_ms must not be negative, got %v", s.FlipMillis)
	}
	if s.CloneAlpha < 0 || s.CloneAlpha > 1 {
		return fmt.Errorf("clone_alpha must be in [0, 1], got %v", s.CloneAlpha)
	}
	return nil
}

// flipSeconds returns FlipMillis in seconds for the tween constructors.
func (s Settings) flipSeconds() float32 {
	return float32(s.FlipMillis / 1000)
}

// ParseColor parses a "#rgb" or "#rrggbb" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// parseColorOr is ParseColor returning fallback when hex does not parse.
func parseColorOr(hex string, fallback Color) Color {
	c, err := ParseColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats the color's RGB components as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// Blend mixes c toward o by t in [0, 1] in CIE-L*a*b* space. Alpha is
// interpolated linearly.
func (c Color) Blend(o Color, t float64) Color {
	a := colorful.Color{R: c.R, G: c.G, B: c.B}
	b := colorful.Color{R: o.R, G: o.G, B: o.B}
	m := a.BlendLab(b, t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: c.A + (o.A-c.A)*t}
}
