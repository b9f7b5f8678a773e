package gfx

// Framebuffer is a resizable RGB565 pixel buffer plus a "present" hook.
//
// hal.Framebuffer satisfies it.
type Framebuffer interface {
	Width() int
	Height() int
	StrideBytes() int
	Buffer() []byte
	Resize(w, h int) error
	Present() error
}

// FramebufferTarget draws into a Framebuffer and tracks its buffer across resizes.
type FramebufferTarget struct {
	fb Framebuffer
	RGB565Target
}

func NewFramebufferTarget(fb Framebuffer) *FramebufferTarget {
	t := &FramebufferTarget{fb: fb}
	t.sync()
	return t
}

func (t *FramebufferTarget) sync() {
	if t.fb == nil {
		t.RGB565Target = RGB565Target{}
		return
	}
	t.RGB565Target = RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.fb.Width(),
		H:      t.fb.Height(),
	}
}

func (t *FramebufferTarget) Resize(w, h int) error {
	if t.fb == nil {
		return nil
	}
	if err := t.fb.Resize(w, h); err != nil {
		return err
	}
	t.sync()
	return nil
}

func (t *FramebufferTarget) Present() error {
	if t.fb == nil {
		return nil
	}
	return t.fb.Present()
}
