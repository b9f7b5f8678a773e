package gfx

import (
	"fmt"
	"image"
	"image/color"
)

// RGB565Target renders into an RGB565 framebuffer buffer.
//
// Callers provide the backing buffer and layout (stride).
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) ColorModel() color.Model { return color.RGBAModel }

func (t *RGB565Target) Bounds() image.Rectangle {
	if !t.valid() {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, t.W, t.H)
}

func (t *RGB565Target) At(x, y int) color.Color { return t.Pixel(x, y).ToRGBA() }

func (t *RGB565Target) Set(x, y int, c color.Color) { t.SetPixel(x, y, fromColor(c)) }

func (t *RGB565Target) valid() bool {
	return t != nil && t.Buf != nil && t.Stride > 0 && t.W > 0 && t.H > 0
}

func (t *RGB565Target) Clear(c Color) {
	if !t.valid() {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	lo := byte(p)
	hi := byte(p >> 8)
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

func (t *RGB565Target) offset(x, y int) (int, bool) {
	if !t.valid() {
		return 0, false
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0, false
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return 0, false
	}
	return off, true
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	off, ok := t.offset(x, y)
	if !ok {
		return
	}
	p := rgb565From888(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

func (t *RGB565Target) Pixel(x, y int) Color {
	off, ok := t.offset(x, y)
	if !ok {
		return Color{}
	}
	r, g, b := rgb888From565(uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8)
	return RGB(r, g, b)
}

// fromColor drops the alpha of a premultiplied color, which leaves it
// composited over black.
func fromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

func errInvalidSize(w, h int) error {
	return fmt.Errorf("gfx: invalid size %dx%d", w, h)
}
