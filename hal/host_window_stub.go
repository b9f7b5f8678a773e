//go:build !cgo

package hal

import (
	"errors"
	"image/color"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Host       HostConfig
	Title      string
	TPS        int
	Background color.RGBA
}

func RunWindow(_ WindowConfig, _ func(HAL) (func() error, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
