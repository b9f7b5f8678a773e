package hal

import (
	"fmt"
	"sync"
)

const maxFramebufferSide = 8192

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	frames uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.resize(width, height)
	return f
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
	return nil
}

func (f *hostFramebuffer) Resize(w, h int) error {
	if w < 0 || h < 0 || w > maxFramebufferSide || h > maxFramebufferSide {
		return fmt.Errorf("framebuffer: invalid size %dx%d", w, h)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resize(w, h)
	return nil
}

func (f *hostFramebuffer) resize(w, h int) {
	if w == f.width && h == f.height && f.buf != nil {
		return
	}
	f.width = w
	f.height = h
	f.stride = w * 2
	f.buf = make([]byte, f.stride*h)
}

// snapshotRGB565 copies the current frame into dst, growing it as needed.
func (f *hostFramebuffer) snapshotRGB565(dst []byte) (w, h int, out []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cap(dst) < len(f.buf) {
		dst = make([]byte, len(f.buf))
	}
	dst = dst[:len(f.buf)]
	copy(dst, f.buf)
	return f.width, f.height, dst
}

func (f *hostFramebuffer) presented() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
