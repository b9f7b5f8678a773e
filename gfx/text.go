package gfx

import (
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is the bitmap font used for chart labels.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// TextWidth returns the advance width of s in pixels.
func TextWidth(f tinyfont.Fonter, s string) int {
	if f == nil {
		return 0
	}
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

// ToRGBA converts c to the image/color form.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

var _ drivers.Displayer = glyphDisplayer{}

// glyphDisplayer receives tinyfont pixels in logical coordinates and adds
// each one to the canvas path as a square scaled by the current transform.
type glyphDisplayer struct {
	c *Canvas
}

func (d glyphDisplayer) Size() (x, y int16) {
	b := d.c.t.Bounds()
	s := d.c.scale
	return int16(min(math.Ceil(float64(b.Dx())/s), math.MaxInt16)), int16(min(math.Ceil(float64(b.Dy())/s), math.MaxInt16))
}

func (d glyphDisplayer) SetPixel(x, y int16, _ color.RGBA) {
	s := d.c.scale
	x0, y0 := float64(x)*s, float64(y)*s
	x1, y1 := x0+s, y0+s
	b := d.c.t.Bounds()
	if x1 <= float64(b.Min.X) || y1 <= float64(b.Min.Y) || x0 >= float64(b.Max.X) || y0 >= float64(b.Max.Y) {
		return
	}
	d.c.addRect(x0, y0, x1, y1)
}

func (d glyphDisplayer) Display() error { return nil }
