package gfx

import (
	"image"
	"image/color"
	"image/draw"
)

// Target is a minimal pixel target for software rendering. The draw.Image
// side is what the rasterizer composites into.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	draw.Image
	Size() (w, h int)
	Pixel(x, y int) Color
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// Resizer is implemented by targets whose backing store can change size.
type Resizer interface {
	Resize(w, h int) error
}

// Presenter is implemented by targets that need an explicit flush after a frame.
type Presenter interface {
	Present() error
}

// ImageTarget renders into an RGBA image. Pixels are treated as opaque.
type ImageTarget struct {
	Img *image.RGBA
}

// NewImageTarget allocates a w×h RGBA target.
func NewImageTarget(w, h int) *ImageTarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ImageTarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t *ImageTarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *ImageTarget) Pixel(x, y int) Color {
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return Color{}
	}
	off := t.Img.PixOffset(x, y)
	p := t.Img.Pix[off : off+4 : off+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (t *ImageTarget) SetPixel(x, y int, c Color) {
	w, h := t.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	off := t.Img.PixOffset(x, y)
	p := t.Img.Pix[off : off+4 : off+4]
	p[0] = c.R
	p[1] = c.G
	p[2] = c.B
	p[3] = 0xFF
}

func (t *ImageTarget) ColorModel() color.Model { return color.RGBAModel }

func (t *ImageTarget) Bounds() image.Rectangle {
	w, h := t.Size()
	return image.Rect(0, 0, w, h)
}

func (t *ImageTarget) At(x, y int) color.Color { return t.Pixel(x, y).ToRGBA() }

// Set stores c composited over black.
func (t *ImageTarget) Set(x, y int, c color.Color) { t.SetPixel(x, y, fromColor(c)) }

func (t *ImageTarget) Clear(c Color) {
	if t == nil || t.Img == nil {
		return
	}
	pix := t.Img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = 0xFF
	}
}

func (t *ImageTarget) Resize(w, h int) error {
	if w < 0 || h < 0 {
		return errInvalidSize(w, h)
	}
	if cw, ch := t.Size(); cw == w && ch == h {
		return nil
	}
	t.Img = image.NewRGBA(image.Rect(0, 0, w, h))
	return nil
}
