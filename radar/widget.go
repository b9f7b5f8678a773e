package radar

import (
	"errors"
	"log/slog"
	"math"

	"alpr/frame"
)

const (
	// MaxDisplaySize caps the chart's logical size.
	MaxDisplaySize = 380
	// ViewportMargin is the horizontal space left around the chart.
	ViewportMargin = 100
	// MinDisplaySize is the smallest size Resize will lay out.
	MinDisplaySize = 64
)

var (
	ErrNoRegistry  = errors.New("radar: nil profile registry")
	ErrNoScheduler = errors.New("radar: nil frame scheduler")
)

// Surface is a resizable drawing target with a device transform.
type Surface interface {
	Canvas
	SetBackingSize(w, h int) error
	ResetTransform()
	Scale(s float64)
	Present() error
}

// SurfaceResolver looks drawing surfaces up by id.
type SurfaceResolver interface {
	Surface(id string) (Surface, bool)
}

// Scheduler queues frame callbacks; frame.Scheduler implements it.
type Scheduler interface {
	Request(fn func()) frame.Handle
	Cancel(h frame.Handle) bool
}

// Sizing derives the chart size from the viewport width.
type Sizing struct {
	Max    float64
	Margin float64
	Min    float64
}

func DefaultSizing() Sizing {
	return Sizing{Max: MaxDisplaySize, Margin: ViewportMargin, Min: MinDisplaySize}
}

// DisplaySize returns min(Max, viewportWidth-Margin). The lower bound is left
// to Widget.Resize.
func (s Sizing) DisplaySize(viewportWidth float64) float64 {
	return math.Min(s.Max, viewportWidth-s.Margin)
}

// Options configures Initialize.
type Options struct {
	// DefaultProfile is selected at start; empty selects the first profile.
	DefaultProfile string
	// DisplaySize is the initial logical size of the chart.
	DisplaySize float64
	// PixelRatio is the device pixel ratio of the surface (1 when unset).
	PixelRatio float64
	// MinSize is the lower size bound (MinDisplaySize when unset).
	MinSize float64
	// MaxSize is the upper size bound (MaxDisplaySize when unset).
	MaxSize float64

	Scheduler Scheduler
	Logger    *slog.Logger
}

// State is the animation state of a widget.
type State uint8

const (
	Idle State = iota
	Converging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Converging:
		return "converging"
	default:
		return "unknown"
	}
}

// Selector is the active flag a profile's UI control reflects.
type Selector struct {
	ID     string
	Name   string
	Active bool
}

// Widget is an animated radar chart bound to a surface.
//
// All methods must be called from the goroutine that ticks its scheduler.
// A widget whose surface could not be resolved is disabled: every operation
// is a no-op apart from SwitchProfile's id check.
type Widget struct {
	enabled bool

	surface Surface
	sched   Scheduler
	reg     *Registry
	axes    Axes
	log     *slog.Logger

	ratio   float64
	minSize float64
	maxSize float64

	current  Profile
	animated Values
	target   Values
	geom     Geometry

	pending frame.Handle
	frameFn func()
	steps   int

	listeners []func(Profile)
	notifying bool
}

// Initialize binds a widget to the surface registered under surfaceID, selects
// the default profile and draws the first animation frame.
//
// A missing surface is not an error: the returned widget is disabled.
func Initialize(surfaces SurfaceResolver, surfaceID string, reg *Registry, axisLabels []string, opts Options) (*Widget, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, ErrNoRegistry
	}
	axes, err := AxesFrom(axisLabels)
	if err != nil {
		return nil, err
	}
	if opts.Scheduler == nil {
		return nil, ErrNoScheduler
	}

	def := opts.DefaultProfile
	if def == "" {
		p, _ := reg.At(0)
		def = p.ID
	}
	current, err := reg.Lookup(def)
	if err != nil {
		return nil, err
	}

	w := &Widget{
		sched:   opts.Scheduler,
		reg:     reg,
		axes:    axes,
		log:     opts.Logger,
		ratio:   opts.PixelRatio,
		minSize: opts.MinSize,
		maxSize: opts.MaxSize,
		current: current,
		target:  current.Values,
	}
	if w.log == nil {
		w.log = slog.New(slog.DiscardHandler)
	}
	if w.ratio <= 0 || math.IsNaN(w.ratio) || math.IsInf(w.ratio, 0) {
		w.ratio = 1
	}
	if w.minSize <= 0 {
		w.minSize = MinDisplaySize
	}
	if w.maxSize <= 0 || math.IsNaN(w.maxSize) || math.IsInf(w.maxSize, 0) {
		w.maxSize = MaxDisplaySize
	}
	if w.maxSize < w.minSize {
		w.maxSize = w.minSize
	}
	w.frameFn = w.onFrame

	var surface Surface
	var ok bool
	if surfaces != nil {
		surface, ok = surfaces.Surface(surfaceID)
	}
	if !ok || surface == nil {
		w.log.Debug("radar surface not found, widget disabled", "surface", surfaceID)
		return w, nil
	}
	w.surface = surface
	w.enabled = true

	w.layout(opts.DisplaySize)
	w.log.Debug("radar initialized",
		"surface", surfaceID,
		"profile", current.ID,
		"size", w.geom.Size,
		"ratio", w.ratio,
	)
	w.animate()
	return w, nil
}

// Enabled reports whether the widget is bound to a surface.
func (w *Widget) Enabled() bool { return w != nil && w.enabled }

// SwitchProfile makes id the animation target and starts converging toward
// it from the currently displayed values. Any pending frame is cancelled
// first. An unknown id returns ErrUnknownProfile and changes nothing, also on
// a disabled widget.
//
// A listener may switch again; the nested call retargets the widget and
// notifies listeners, and the outer call then takes a single easing step
// toward the last target.
func (w *Widget) SwitchProfile(id string) error {
	if w == nil || w.reg == nil {
		return nil
	}
	p, err := w.reg.Lookup(id)
	if err != nil {
		return err
	}
	if !w.enabled {
		return nil
	}

	w.current = p
	w.target = p.Values

	nested := w.notifying
	w.notifying = true
	for _, fn := range w.listeners {
		fn(p)
	}
	w.notifying = nested
	if nested {
		return nil
	}

	if w.pending != 0 {
		w.sched.Cancel(w.pending)
		w.pending = 0
	}
	w.steps = 0
	w.log.Debug("radar profile switched", "profile", w.current.ID)
	w.animate()
	return nil
}

// Resize lays the chart out at size logical pixels and redraws the current
// values immediately. It does not touch the running animation.
func (w *Widget) Resize(size float64) {
	if !w.Enabled() {
		return
	}
	w.layout(size)
	w.draw()
}

func (w *Widget) clampSize(size float64) float64 {
	if math.IsNaN(size) || size < w.minSize {
		return w.minSize
	}
	if size > w.maxSize {
		return w.maxSize
	}
	return size
}

func (w *Widget) layout(size float64) {
	size = w.clampSize(size)
	backing := int(math.Round(size * w.ratio))
	if err := w.surface.SetBackingSize(backing, backing); err != nil {
		w.log.Warn("radar backing resize failed", "size", backing, "error", err)
	}
	w.surface.ResetTransform()
	w.surface.Scale(w.ratio)
	w.geom = NewGeometry(size)
}

func (w *Widget) onFrame() {
	w.pending = 0
	w.animate()
}

// animate runs one easing step, draws it, and requests the next frame while
// any axis is still moving.
func (w *Widget) animate() {
	moving := Step(&w.animated, w.target)
	w.steps++
	w.draw()
	if moving {
		w.pending = w.sched.Request(w.frameFn)
		return
	}
	w.log.Debug("radar settled", "profile", w.current.ID, "frames", w.steps)
}

func (w *Widget) draw() {
	Render(w.Frame(), w.current.Color, w.surface)
	if err := w.surface.Present(); err != nil {
		w.log.Warn("radar present failed", "error", err)
	}
}

// Frame composes the chart for the currently displayed values.
func (w *Widget) Frame() Frame {
	return Compose(w.geom, w.animated, w.axes)
}

// RenderTo draws the current state onto another canvas.
func (w *Widget) RenderTo(c Canvas) {
	if w == nil || c == nil {
		return
	}
	Render(w.Frame(), w.current.Color, c)
}

// State reports whether a frame is pending.
func (w *Widget) State() State {
	if w == nil || w.pending == 0 {
		return Idle
	}
	return Converging
}

// Current returns the selected profile.
func (w *Widget) Current() Profile {
	if w == nil {
		return Profile{}
	}
	return w.current
}

// Animated returns the displayed values.
func (w *Widget) Animated() Values {
	if w == nil {
		return Values{}
	}
	return w.animated
}

// Target returns the values being converged to.
func (w *Widget) Target() Values {
	if w == nil {
		return Values{}
	}
	return w.target
}

// Geometry returns the current layout.
func (w *Widget) Geometry() Geometry {
	if w == nil {
		return Geometry{}
	}
	return w.geom
}

// Registry returns the profile catalogue.
func (w *Widget) Registry() *Registry {
	if w == nil {
		return nil
	}
	return w.reg
}

// IsActive reports whether id is the selected profile.
func (w *Widget) IsActive(id string) bool {
	return w != nil && w.current.ID == id
}

// Selectors lists every profile with its active flag, in catalogue order.
func (w *Widget) Selectors() []Selector {
	if w == nil {
		return nil
	}
	out := make([]Selector, 0, w.reg.Len())
	for _, p := range w.reg.Profiles() {
		out = append(out, Selector{ID: p.ID, Name: p.Name, Active: p.ID == w.current.ID})
	}
	return out
}

// OnSelect registers fn to run once per successful SwitchProfile.
func (w *Widget) OnSelect(fn func(Profile)) {
	if w == nil || fn == nil {
		return
	}
	w.listeners = append(w.listeners, fn)
}
