package radar

import "alpr/gfx"

// Canvas is the set of drawing operations the chart needs.
type Canvas interface {
	Clear()
	StrokePath(pts []gfx.Point, closed bool, c gfx.Color, width float64)
	FillPath(pts []gfx.Point, c gfx.Color)
	FillCircle(p gfx.Point, r float64, c gfx.Color)
	FillText(s string, at gfx.Point, c gfx.Color, bold bool)
}

const (
	ringOpacity      = 0.04
	outerRingOpacity = 0.08
	spokeOpacity     = 0.06
	labelOpacity     = 0.6

	fillOpacity   = 0.15
	strokeOpacity = 0.8
	scoreOpacity  = 0.9

	strokeWidth = 2
	dotRadius   = 4
)

// Render draws a composed frame in the profile color c.
func Render(f Frame, c gfx.Color, cv Canvas) {
	cv.Clear()

	for ring := 0; ring < RingCount; ring++ {
		op := ringOpacity
		if ring == RingCount-1 {
			op = outerRingOpacity
		}
		cv.StrokePath(f.Rings[ring][:], true, gfx.White.WithAlpha(op), 1)
	}

	spoke := gfx.White.WithAlpha(spokeOpacity)
	for i := 0; i < AxisCount; i++ {
		cv.StrokePath([]gfx.Point{f.Geometry.Center, f.Spokes[i]}, false, spoke, 1)
	}

	cv.FillPath(f.Polygon[:], c.WithAlpha(fillOpacity))
	cv.StrokePath(f.Polygon[:], true, c.WithAlpha(strokeOpacity), strokeWidth)

	for i := 0; i < AxisCount; i++ {
		cv.FillCircle(f.Polygon[i], dotRadius, c.WithAlpha(1))
		cv.FillText(f.Scores[i].Text, f.Scores[i].At, c.WithAlpha(scoreOpacity), true)
	}

	label := gfx.White.WithAlpha(labelOpacity)
	for i := 0; i < AxisCount; i++ {
		for _, l := range f.Labels[i] {
			cv.FillText(l.Text, l.At, label, false)
		}
	}
}
