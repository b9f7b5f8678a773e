package gfx

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
	"tinygo.org/x/tinyfont"
)

// Canvas is a software 2D drawing context over a Target.
//
// Every drawing call builds one path in device space and composites it with a
// single anti-aliased pass, so overlapping parts of a stroke blend once.
// It is not safe for concurrent use.
type Canvas struct {
	t Target

	// Background is the color Clear paints.
	Background Color

	scale float64

	font tinyfont.Fonter

	r    *vector.Rasterizer
	path []Point
	ends []int
	tmp  []Point
}

// NewCanvas creates a canvas drawing into t with an identity transform.
func NewCanvas(t Target) *Canvas {
	return &Canvas{
		t:     t,
		scale: 1,
		font:  DefaultFont,
	}
}

// Target returns the backing target.
func (c *Canvas) Target() Target { return c.t }

// SetFont selects the font FillText uses.
func (c *Canvas) SetFont(f tinyfont.Fonter) {
	if f == nil {
		f = DefaultFont
	}
	c.font = f
}

// SetBackingSize resizes the backing target, if it supports resizing.
func (c *Canvas) SetBackingSize(w, h int) error {
	r, ok := c.t.(Resizer)
	if !ok {
		return nil
	}
	return r.Resize(w, h)
}

// ResetTransform restores the identity transform.
func (c *Canvas) ResetTransform() { c.scale = 1 }

// Scale multiplies the current transform by s.
func (c *Canvas) Scale(s float64) {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return
	}
	c.scale *= s
}

// Transform returns the current logical-to-backing scale factor.
func (c *Canvas) Transform() float64 { return c.scale }

// Clear paints the whole target with Background.
func (c *Canvas) Clear() {
	if c.t == nil {
		return
	}
	c.t.Clear(c.Background)
}

// Present flushes the frame if the target needs it.
func (c *Canvas) Present() error {
	if p, ok := c.t.(Presenter); ok {
		return p.Present()
	}
	return nil
}

// StrokePath strokes the polyline through pts, closing it back to pts[0] when
// closed is set. Joins are round and open ends are butt.
func (c *Canvas) StrokePath(pts []Point, closed bool, col Color, width float64) {
	if len(pts) == 0 || !c.begin() {
		return
	}
	hw := width * c.scale / 2
	if hw < 0.5 {
		hw = 0.5
	}
	if len(pts) == 1 {
		c.addDisc(c.dev(pts[0]), hw)
		c.fill(col)
		return
	}

	n := len(pts)
	for i := 0; i+1 < n; i++ {
		c.addSegment(c.dev(pts[i]), c.dev(pts[i+1]), hw)
	}
	if closed && n > 2 {
		c.addSegment(c.dev(pts[n-1]), c.dev(pts[0]), hw)
	}
	for i, p := range pts {
		if (closed && n > 2) || (i > 0 && i < n-1) {
			c.addDisc(c.dev(p), hw)
		}
	}
	c.fill(col)
}

// FillPath fills the closed polygon through pts.
func (c *Canvas) FillPath(pts []Point, col Color) {
	if len(pts) < 3 || !c.begin() {
		return
	}
	c.tmp = c.tmp[:0]
	for _, p := range pts {
		c.tmp = append(c.tmp, c.dev(p))
	}
	c.addPoly(c.tmp)
	c.fill(col)
}

// FillCircle fills a disc of radius r around p.
func (c *Canvas) FillCircle(p Point, r float64, col Color) {
	if r <= 0 || !c.begin() {
		return
	}
	rr := r * c.scale
	if rr < 0.5 {
		rr = 0.5
	}
	c.addDisc(c.dev(p), rr)
	c.fill(col)
}

// FillText draws s horizontally centered on at.X with its baseline on at.Y.
// Glyphs are laid out in logical pixels and scaled by the current transform.
func (c *Canvas) FillText(s string, at Point, col Color, bold bool) {
	if s == "" || c.font == nil || !c.begin() {
		return
	}
	x := int16(math.Round(at.X - float64(TextWidth(c.font, s))/2))
	y := int16(math.Round(at.Y))

	d := glyphDisplayer{c: c}
	tinyfont.WriteLine(d, c.font, x, y, s, col.ToRGBA())
	if bold {
		tinyfont.WriteLine(d, c.font, x+1, y, s, col.ToRGBA())
	}
	c.fill(col)
}

func (c *Canvas) dev(p Point) Point {
	return Point{X: p.X * c.scale, Y: p.Y * c.scale}
}

// begin starts an empty path.
func (c *Canvas) begin() bool {
	if c.t == nil || c.t.Bounds().Empty() {
		return false
	}
	c.path = c.path[:0]
	c.ends = c.ends[:0]
	return true
}

// addPoly appends a closed sub-path in device space. Sub-paths are stored
// counter-clockwise so overlaps accumulate instead of cancelling.
func (c *Canvas) addPoly(pts []Point) {
	if len(pts) < 3 {
		return
	}
	area := 0.0
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return
		}
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	switch {
	case area > 0:
		c.path = append(c.path, pts...)
	case area < 0:
		for i := len(pts) - 1; i >= 0; i-- {
			c.path = append(c.path, pts[i])
		}
	default:
		return
	}
	c.ends = append(c.ends, len(c.path))
}

func (c *Canvas) addSegment(a, b Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	c.tmp = append(c.tmp[:0],
		Point{X: a.X + nx, Y: a.Y + ny},
		Point{X: b.X + nx, Y: b.Y + ny},
		Point{X: b.X - nx, Y: b.Y - ny},
		Point{X: a.X - nx, Y: a.Y - ny},
	)
	c.addPoly(c.tmp)
}

func (c *Canvas) addDisc(p Point, r float64) {
	n := int(math.Ceil(4 * r))
	n = max(12, min(n, 128))
	c.tmp = c.tmp[:0]
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c.tmp = append(c.tmp, Point{X: p.X + r*math.Cos(a), Y: p.Y + r*math.Sin(a)})
	}
	c.addPoly(c.tmp)
}

func (c *Canvas) addRect(x0, y0, x1, y1 float64) {
	c.tmp = append(c.tmp[:0], Point{X: x0, Y: y0}, Point{X: x1, Y: y0}, Point{X: x1, Y: y1}, Point{X: x0, Y: y1})
	c.addPoly(c.tmp)
}

// fill composites the current path over the target in col.
func (c *Canvas) fill(col Color) {
	if col.A == 0 || len(c.ends) == 0 {
		return
	}
	b := c.t.Bounds()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range c.path {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	clip := func(v float64, lo, hi int) int {
		return int(math.Max(float64(lo), math.Min(float64(hi), v)))
	}
	r := image.Rect(
		clip(math.Floor(minX)-1, b.Min.X, b.Max.X),
		clip(math.Floor(minY)-1, b.Min.Y, b.Max.Y),
		clip(math.Ceil(maxX)+1, b.Min.X, b.Max.X),
		clip(math.Ceil(maxY)+1, b.Min.Y, b.Max.Y),
	)
	if r.Empty() {
		return
	}

	if c.r == nil {
		c.r = vector.NewRasterizer(r.Dx(), r.Dy())
	} else {
		c.r.Reset(r.Dx(), r.Dy())
	}
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	start := 0
	for _, end := range c.ends {
		poly := c.path[start:end]
		c.r.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			c.r.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		c.r.ClosePath()
		start = end
	}
	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A})
	c.r.Draw(c.t, r, src, image.Point{})
}
