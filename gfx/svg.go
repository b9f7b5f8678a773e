package gfx

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVGCanvas emits drawing ops as SVG elements.
//
// Coordinates are rounded to whole logical pixels. Close must be called once
// drawing is done to terminate the document.
type SVGCanvas struct {
	s *svg.SVG
	w int
	h int

	// Background is the color Clear paints.
	Background Color
	// FontFamily is written into text styles.
	FontFamily string
	// FontSize is the text size in pixels.
	FontSize int
}

// NewSVGCanvas starts a w×h SVG document on out.
func NewSVGCanvas(out io.Writer, w, h int) *SVGCanvas {
	c := &SVGCanvas{
		s:          svg.New(out),
		w:          w,
		h:          h,
		FontFamily: "Inter, sans-serif",
		FontSize:   11,
	}
	c.s.Start(w, h)
	return c
}

// Close ends the document.
func (c *SVGCanvas) Close() error {
	c.s.End()
	return nil
}

func (c *SVGCanvas) Clear() {
	c.s.Rect(0, 0, c.w, c.h, fillStyle(c.Background))
}

func (c *SVGCanvas) StrokePath(pts []Point, closed bool, col Color, width float64) {
	if len(pts) == 0 {
		return
	}
	xs, ys := roundPoints(pts)
	style := fmt.Sprintf("fill:none;%s;stroke-width:%g;stroke-linejoin:round", strokeStyle(col), width)
	if closed {
		c.s.Polygon(xs, ys, style)
		return
	}
	c.s.Polyline(xs, ys, style)
}

func (c *SVGCanvas) FillPath(pts []Point, col Color) {
	if len(pts) < 3 {
		return
	}
	xs, ys := roundPoints(pts)
	c.s.Polygon(xs, ys, fillStyle(col)+";fill-rule:evenodd")
}

func (c *SVGCanvas) FillCircle(p Point, r float64, col Color) {
	if r <= 0 {
		return
	}
	c.s.Circle(round(p.X), round(p.Y), round(r), fillStyle(col))
}

func (c *SVGCanvas) FillText(s string, at Point, col Color, bold bool) {
	if s == "" {
		return
	}
	style := fmt.Sprintf("%s;text-anchor:middle;font-family:%s;font-size:%dpx", fillStyle(col), c.FontFamily, c.FontSize)
	if bold {
		style += ";font-weight:bold"
	}
	c.s.Text(round(at.X), round(at.Y), s, style)
}

func fillStyle(c Color) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3g", c.R, c.G, c.B, c.Opacity())
}

func strokeStyle(c Color) string {
	return fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-opacity:%.3g", c.R, c.G, c.B, c.Opacity())
}

func roundPoints(pts []Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i] = round(p.X)
		ys[i] = round(p.Y)
	}
	return xs, ys
}

func round(v float64) int { return int(math.Round(v)) }
