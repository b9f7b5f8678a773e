package radar

import (
	"alpr/gfx"
)

// recordingSurface records drawing ops instead of rasterizing them.
type recordingSurface struct {
	ops      []string
	texts    []string
	fills    []gfx.Color
	backingW int
	backingH int
	scale    float64
	resets   int
	presents int
}

func (s *recordingSurface) Clear() { s.ops = append(s.ops, "clear") }

func (s *recordingSurface) StrokePath(pts []gfx.Point, closed bool, c gfx.Color, width float64) {
	s.ops = append(s.ops, "stroke")
}

func (s *recordingSurface) FillPath(pts []gfx.Point, c gfx.Color) {
	s.ops = append(s.ops, "fill")
	s.fills = append(s.fills, c)
}

func (s *recordingSurface) FillCircle(p gfx.Point, r float64, c gfx.Color) {
	s.ops = append(s.ops, "circle")
}

func (s *recordingSurface) FillText(text string, at gfx.Point, c gfx.Color, bold bool) {
	s.ops = append(s.ops, "text")
	s.texts = append(s.texts, text)
}

func (s *recordingSurface) SetBackingSize(w, h int) error {
	s.backingW, s.backingH = w, h
	return nil
}

func (s *recordingSurface) ResetTransform() {
	s.scale = 1
	s.resets++
}

func (s *recordingSurface) Scale(f float64) { s.scale *= f }

func (s *recordingSurface) Present() error {
	s.presents++
	return nil
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, o := range s.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (s *recordingSurface) reset() {
	s.ops = nil
	s.texts = nil
	s.fills = nil
}

type surfaceMap map[string]Surface

func (m surfaceMap) Surface(id string) (Surface, bool) {
	s, ok := m[id]
	return s, ok
}
