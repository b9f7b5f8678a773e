package radar

import (
	"math"
	"strconv"

	"alpr/gfx"
)

const (
	// RadiusRatio is the max radius as a fraction of the display size.
	RadiusRatio = 0.38

	// AngleStep is the angular distance between neighbouring axes.
	AngleStep = 2 * math.Pi / AxisCount
	// StartAngle places axis 0 straight up.
	StartAngle = -math.Pi / 2

	scoreOffset     = 14
	scoreBaseline   = 4
	labelOffset     = 30
	labelLineHeight = 14
)

// Geometry is the viewport-derived layout of the chart, in logical pixels.
type Geometry struct {
	Size      float64
	Center    gfx.Point
	MaxRadius float64
}

// NewGeometry lays out a chart filling a size×size square.
func NewGeometry(size float64) Geometry {
	return Geometry{
		Size:      size,
		Center:    gfx.Pt(size/2, size/2),
		MaxRadius: size * RadiusRatio,
	}
}

// AxisAngle returns the angle of axis i; axes run clockwise from the top.
func AxisAngle(i int) float64 {
	return StartAngle + float64(i)*AngleStep
}

// At returns the point at radius r along axis i.
func (g Geometry) At(axis int, r float64) gfx.Point {
	return gfx.Polar(g.Center, r, AxisAngle(axis))
}

// Label is a piece of text anchored at its horizontal center and baseline.
type Label struct {
	Text string
	At   gfx.Point
}

// Frame is every computed position of one rendered chart.
type Frame struct {
	Geometry Geometry

	Rings   [RingCount][AxisCount]gfx.Point
	Spokes  [AxisCount]gfx.Point
	Polygon [AxisCount]gfx.Point
	Scores  [AxisCount]Label
	Labels  [AxisCount][]Label
}

// Compose computes the frame for values drawn with geometry g.
func Compose(g Geometry, values Values, axes Axes) Frame {
	f := Frame{Geometry: g}

	for ring := 1; ring <= RingCount; ring++ {
		r := (g.MaxRadius / RingCount) * float64(ring)
		for i := 0; i < AxisCount; i++ {
			f.Rings[ring-1][i] = g.At(i, r)
		}
	}

	for i := 0; i < AxisCount; i++ {
		angle := AxisAngle(i)
		f.Spokes[i] = gfx.Polar(g.Center, g.MaxRadius, angle)

		r := g.MaxRadius * values[i]
		f.Polygon[i] = gfx.Polar(g.Center, r, angle)

		sp := gfx.Polar(g.Center, r+scoreOffset, angle)
		sp.Y += scoreBaseline
		f.Scores[i] = Label{Text: Score(values[i]), At: sp}

		lp := gfx.Polar(g.Center, g.MaxRadius+labelOffset, angle)
		lines := axes.Lines(i)
		f.Labels[i] = make([]Label, len(lines))
		for k, line := range lines {
			y := lp.Y + float64(k*labelLineHeight) - float64(len(lines)-1)*labelLineHeight/2
			f.Labels[i][k] = Label{Text: line, At: gfx.Pt(lp.X, y)}
		}
	}
	return f
}

// Score formats a value as its rounded percentage.
func Score(v float64) string {
	return strconv.Itoa(int(math.Floor(v*100 + 0.5)))
}
