package hal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostFramebufferResize(t *testing.T) {
	fb := newHostFramebuffer(0, 0)
	assert.Equal(t, 0, fb.Width())
	assert.Empty(t, fb.Buffer())

	require.NoError(t, fb.Resize(4, 3))
	assert.Equal(t, 4, fb.Width())
	assert.Equal(t, 3, fb.Height())
	assert.Equal(t, 8, fb.StrideBytes())
	assert.Len(t, fb.Buffer(), 24)

	assert.Error(t, fb.Resize(-1, 3))
	assert.Error(t, fb.Resize(maxFramebufferSide+1, 3))
	assert.Equal(t, 4, fb.Width(), "failed resize keeps the old size")
}

func TestHostFramebufferClearAndSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	buf := fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = 0x00, 0xF8
	}

	w, h, snap := fb.snapshotRGB565(nil)
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	require.Len(t, snap, 8)
	for i := 0; i < len(snap); i += 2 {
		p := uint16(snap[i]) | uint16(snap[i+1])<<8
		assert.Equal(t, uint16(0xF800), p)
	}

	// Snapshot is a copy.
	snap[1] = 0
	assert.Equal(t, byte(0xF8), fb.Buffer()[1])

	require.NoError(t, fb.Present())
	require.NoError(t, fb.Present())
	assert.Equal(t, uint64(2), fb.presented())
}

func TestRGB888From565(t *testing.T) {
	tests := []struct {
		in   uint16
		want [3]uint8
	}{
		{0xFFFF, [3]uint8{0xFF, 0xFF, 0xFF}},
		{0x0000, [3]uint8{0, 0, 0}},
		{0xF800, [3]uint8{0xFF, 0, 0}},
		{0x07E0, [3]uint8{0, 0xFF, 0}},
		{0x001F, [3]uint8{0, 0, 0xFF}},
	}
	for _, tt := range tests {
		r, g, b := rgb888From565(tt.in)
		assert.Equal(t, tt.want, [3]uint8{r, g, b}, "%#04x", tt.in)
	}
}

func TestHostDisplayLookup(t *testing.T) {
	h := New(HostConfig{SurfaceID: "radarCanvas", Width: 800, Height: 600})

	assert.NotNil(t, h.Display().Framebuffer("radarCanvas"))
	assert.Nil(t, h.Display().Framebuffer("missing"))

	none := New(HostConfig{})
	assert.Nil(t, none.Display().Framebuffer("radarCanvas"))
}

func TestHostViewport(t *testing.T) {
	h := newHost(HostConfig{Width: 800, Height: 600})
	w, ht := h.Viewport().Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, ht)
	assert.Equal(t, 1.0, h.Viewport().DeviceScale())

	h.viewport.set(1024, 768, 2)
	w, ht = h.Viewport().Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, ht)
	assert.Equal(t, 2.0, h.Viewport().DeviceScale())

	h.viewport.set(640, 480, 0)
	assert.Equal(t, 2.0, h.Viewport().DeviceScale(), "zero scale keeps the previous ratio")
}

func TestHostWindowTitle(t *testing.T) {
	w := &hostWindow{}
	_, ok := w.takeTitle()
	assert.False(t, ok)

	w.SetTitle("Independent")
	title, ok := w.takeTitle()
	assert.True(t, ok)
	assert.Equal(t, "Independent", title)

	w.SetTitle("Independent")
	_, ok = w.takeTitle()
	assert.False(t, ok, "same title is not reported again")
}

func TestHostLogger(t *testing.T) {
	var buf bytes.Buffer
	h := New(HostConfig{Log: &buf})
	h.Logger().WriteLineString("hello")
	h.Logger().WriteLineBytes([]byte("world"))
	assert.Equal(t, "hello\nworld\n", buf.String())
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error {
			steps++
			return nil
		}, nil
	}, HeadlessConfig{Hz: 1000, Ticks: 5})

	require.NoError(t, err)
	assert.Equal(t, 5, steps)
}

func TestRunHeadlessQuit(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error {
			steps++
			if steps == 3 {
				return ErrQuit
			}
			return nil
		}, nil
	}, HeadlessConfig{Hz: 1000})

	require.NoError(t, err)
	assert.Equal(t, 3, steps)
}

func TestRunHeadlessErrors(t *testing.T) {
	boom := errors.New("boom")

	err := RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return nil, boom
	}, HeadlessConfig{})
	assert.ErrorIs(t, err, boom)

	err = RunHeadless(context.Background(), func(HAL) (func() error, error) {
		return func() error { return boom }, nil
	}, HeadlessConfig{Hz: 1000})
	assert.ErrorIs(t, err, boom)
}

func TestRunHeadlessContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := RunHeadless(ctx, func(HAL) (func() error, error) {
		return func() error { return nil }, nil
	}, HeadlessConfig{Hz: 100})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
