package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig describes the host surfaces.
type HostConfig struct {
	// SurfaceID is the id the chart framebuffer is registered under.
	SurfaceID string
	// Width and Height are the initial logical viewport size.
	Width  int
	Height int
	// DeviceScale is the initial device pixel ratio (1 when unset).
	DeviceScale float64
	// Log receives log lines (stdout when nil).
	Log io.Writer
}

type hostHAL struct {
	logger   *hostLogger
	fbs      map[string]*hostFramebuffer
	primary  *hostFramebuffer
	kbd      *hostKeyboard
	viewport *hostViewport
	window   *hostWindow
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	if cfg.DeviceScale <= 0 {
		cfg.DeviceScale = 1
	}
	logger := &hostLogger{w: w}

	h := &hostHAL{
		logger:   logger,
		fbs:      map[string]*hostFramebuffer{},
		kbd:      newHostKeyboard(),
		viewport: &hostViewport{w: cfg.Width, ht: cfg.Height, scale: cfg.DeviceScale},
		window:   &hostWindow{},
	}
	if cfg.SurfaceID != "" {
		// Sized by the first Resize of its user.
		h.primary = newHostFramebuffer(0, 0)
		h.fbs[cfg.SurfaceID] = h.primary
	}
	return h
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) Display() Display   { return hostDisplay{fbs: h.fbs} }
func (h *hostHAL) Input() Input       { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Viewport() Viewport { return h.viewport }
func (h *hostHAL) Window() Window     { return h.window }

type hostDisplay struct {
	fbs map[string]*hostFramebuffer
}

func (d hostDisplay) Framebuffer(id string) Framebuffer {
	fb, ok := d.fbs[id]
	if !ok {
		return nil
	}
	return fb
}

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostViewport struct {
	mu    sync.Mutex
	w     int
	ht    int
	scale float64
}

func (v *hostViewport) Size() (w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.ht
}

func (v *hostViewport) DeviceScale() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scale
}

func (v *hostViewport) set(w, h int, scale float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.w, v.ht = w, h
	if scale > 0 {
		v.scale = scale
	}
}

type hostWindow struct {
	mu    sync.Mutex
	title string
	dirty bool
}

func (w *hostWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if title == w.title {
		return
	}
	w.title = title
	w.dirty = true
}

// takeTitle returns the title if it changed since the last call.
func (w *hostWindow) takeTitle() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty {
		return "", false
	}
	w.dirty = false
	return w.title, true
}
