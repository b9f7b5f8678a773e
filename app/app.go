// Package app binds the radar widget to a HAL: it resolves the chart surface,
// ticks the frame scheduler and maps keys and viewport changes to widget
// operations.
package app

import (
	"log/slog"

	"alpr/frame"
	"alpr/gfx"
	"alpr/hal"
	"alpr/internal/logging"
	"alpr/radar"
)

// Config wires the chart into a host.
type Config struct {
	SurfaceID      string
	Registry       *radar.Registry
	Axes           radar.Axes
	DefaultProfile string
	Sizing         radar.Sizing
	Background     gfx.Color
	// CycleEvery switches to the next profile after that many idle frames (0 = never).
	CycleEvery int
	Logger     *slog.Logger
}

// App is one running chart. Step must be called from the host loop goroutine.
type App struct {
	h      hal.HAL
	cfg    Config
	log    *slog.Logger
	sched  *frame.Scheduler
	widget *radar.Widget
	keys   <-chan hal.KeyEvent

	viewportW int
	idle      int
}

// NewWithConfig builds an App and returns its step function for the hosts.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	a, err := New(h, cfg)
	if err != nil {
		return nil, err
	}
	return a.Step, nil
}

func New(h hal.HAL, cfg Config) (*App, error) {
	if cfg.Sizing == (radar.Sizing{}) {
		cfg.Sizing = radar.DefaultSizing()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	a := &App{
		h:     h,
		cfg:   cfg,
		log:   log,
		sched: frame.New(),
	}
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			a.keys = kbd.Events()
		}
	}

	vw, _ := h.Viewport().Size()
	a.viewportW = vw

	w, err := radar.Initialize(displaySurfaces{d: h.Display(), bg: cfg.Background}, cfg.SurfaceID, cfg.Registry, cfg.Axes[:], radar.Options{
		DefaultProfile: cfg.DefaultProfile,
		DisplaySize:    cfg.Sizing.DisplaySize(float64(vw)),
		PixelRatio:     h.Viewport().DeviceScale(),
		MinSize:        cfg.Sizing.Min,
		MaxSize:        cfg.Sizing.Max,
		Scheduler:      a.sched,
		Logger:         log,
	})
	if err != nil {
		return nil, err
	}
	a.widget = w

	if !w.Enabled() {
		log.Warn("chart surface not found, running without chart", "surface", cfg.SurfaceID)
		return a, nil
	}
	w.OnSelect(a.selected)
	h.Window().SetTitle(w.Current().Name)
	log.Info("chart ready", "surface", cfg.SurfaceID, "profile", w.Current().ID, "size", w.Geometry().Size)
	return a, nil
}

// Widget returns the chart widget.
func (a *App) Widget() *radar.Widget { return a.widget }

// Scheduler returns the frame scheduler ticked by Step.
func (a *App) Scheduler() *frame.Scheduler { return a.sched }

func (a *App) selected(p radar.Profile) {
	a.h.Window().SetTitle(p.Name)
	a.log.Info("profile selected", "profile", p.ID, "name", p.Name)
}

// Step advances the app by one host frame: viewport, input, auto-cycle and
// then the scheduled animation frames.
func (a *App) Step() error {
	a.syncViewport()
	if err := a.handleInput(); err != nil {
		return err
	}
	a.autoCycle()
	a.sched.Tick()
	return nil
}

func (a *App) syncViewport() {
	w, _ := a.h.Viewport().Size()
	if w == a.viewportW {
		return
	}
	a.viewportW = w
	size := a.cfg.Sizing.DisplaySize(float64(w))
	a.log.Debug("viewport resized", "width", w, "size", size)
	a.widget.Resize(size)
}

func (a *App) handleInput() error {
	if a.keys == nil {
		return nil
	}
	for {
		select {
		case ev := <-a.keys:
			if !ev.Press {
				continue
			}
			if err := a.handleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (a *App) handleKey(ev hal.KeyEvent) error {
	switch ev.Code {
	case hal.KeyEscape:
		return hal.ErrQuit
	case hal.KeyLeft:
		a.cycle(-1)
		return nil
	case hal.KeyRight, hal.KeyTab:
		a.cycle(1)
		return nil
	case hal.KeyHome:
		a.selectIndex(0)
		return nil
	case hal.KeyEnd:
		a.selectIndex(a.cfg.Registry.Len() - 1)
		return nil
	}

	switch r := ev.Rune; {
	case r == 'q' || r == 'Q':
		return hal.ErrQuit
	case r >= '1' && r <= '9':
		a.selectIndex(int(r - '1'))
	}
	return nil
}

func (a *App) selectIndex(i int) {
	p, ok := a.cfg.Registry.At(i)
	if !ok {
		return
	}
	if err := a.widget.SwitchProfile(p.ID); err != nil {
		a.log.Warn("profile switch failed", "profile", p.ID, "error", err)
	}
}

func (a *App) cycle(delta int) {
	n := a.cfg.Registry.Len()
	i := a.cfg.Registry.Index(a.widget.Current().ID)
	if i < 0 {
		i = 0
	}
	a.selectIndex(((i+delta)%n + n) % n)
}

func (a *App) autoCycle() {
	if a.cfg.CycleEvery <= 0 || a.widget.State() != radar.Idle {
		a.idle = 0
		return
	}
	a.idle++
	if a.idle >= a.cfg.CycleEvery {
		a.idle = 0
		a.cycle(1)
	}
}

type displaySurfaces struct {
	d  hal.Display
	bg gfx.Color
}

func (s displaySurfaces) Surface(id string) (radar.Surface, bool) {
	if s.d == nil {
		return nil, false
	}
	fb := s.d.Framebuffer(id)
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, false
	}
	c := gfx.NewCanvas(gfx.NewFramebufferTarget(fb))
	c.Background = s.bg
	return c, true
}
