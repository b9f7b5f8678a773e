package hal

import "errors"

// ErrQuit is returned by an app step to end the host loop cleanly.
var ErrQuit = errors.New("quit")

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a resizable pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Resize(w, h int) error
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
	KeyHome
	KeyEnd
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides drawing surfaces by id.
type Display interface {
	// Framebuffer returns the surface registered under id, or nil.
	Framebuffer(id string) Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Viewport reports the logical size of the host view and its device scale.
type Viewport interface {
	Size() (w, h int)
	DeviceScale() float64
}

// Window is the host window chrome.
type Window interface {
	SetTitle(title string)
}

// HAL provides the only contact point between the widget glue and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Viewport() Viewport
	Window() Window
}
