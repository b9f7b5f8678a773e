//go:build cgo

package hal

import (
	"errors"
	"image"
	"image/color"

	"alpr/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Host       HostConfig
	Title      string
	TPS        int
	Background color.RGBA
}

// RunWindow starts a desktop window that displays the chart framebuffer and
// forwards keyboard input and viewport changes. It blocks until the window
// closes or the app step returns ErrQuit.
func RunWindow(cfg WindowConfig, newApp func(HAL) (func() error, error)) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Host.DeviceScale <= 0 {
		cfg.Host.DeviceScale = ebiten.Monitor().DeviceScaleFactor()
	}

	h := newHost(cfg.Host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, bg: cfg.Background}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Host.Width, cfg.Host.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	g.title = cfg.Title
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
	bg      color.RGBA
	title   string
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if t, ok := g.h.window.takeTitle(); ok {
		ebiten.SetWindowTitle(g.title + " - " + t)
	}
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)

	fb := g.h.primary
	if fb == nil {
		return
	}
	w, h, src := fb.snapshotRGB565(g.scratch)
	g.scratch = src
	if w <= 0 || h <= 0 {
		return
	}

	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
	g.fbImg.WritePixels(g.img.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((sw-w)/2), float64((sh-h)/2))
	screen.DrawImage(g.fbImg, op)
}

// Layout tracks the logical window size as the viewport and renders at device resolution.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	g.h.viewport.set(outsideWidth, outsideHeight, scale)
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}
