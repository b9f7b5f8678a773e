package gfx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// White is the neutral stroke color used for chart scaffolding.
var White = RGB(0xFF, 0xFF, 0xFF)

// WithAlpha returns c with its alpha set from an opacity in [0,1].
func (c Color) WithAlpha(opacity float64) Color {
	if opacity <= 0 || math.IsNaN(opacity) {
		c.A = 0
		return c
	}
	if opacity >= 1 {
		c.A = 0xFF
		return c
	}
	c.A = uint8(math.Round(opacity * 255))
	return c
}

// Opacity returns the alpha channel as a value in [0,1].
func (c Color) Opacity() float64 { return float64(c.A) / 255 }

// Over blends c over an opaque dst color.
func (c Color) Over(dst Color) Color {
	a := uint32(c.A)
	if a == 0xFF {
		return Color{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	inv := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*inv + 127) / 255)
	}
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: 0xFF}
}

// Hex formats the RGB channels as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String formats the RGB channels as "r, g, b".
func (c Color) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// ParseColor parses "r, g, b" triples and "#rrggbb" hex colors into an opaque Color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("parse color: empty value")
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("parse color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("parse color %q: want \"r, g, b\"", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: channel %d: %w", s, i, err)
		}
		ch[i] = uint8(v)
	}
	return RGB(ch[0], ch[1], ch[2]), nil
}

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Polar returns the point at radius r and angle a (radians) around c.
func Polar(c Point, r, a float64) Point {
	return Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
}
