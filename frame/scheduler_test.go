package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRunsOnNextTick(t *testing.T) {
	s := New()
	calls := 0
	h := s.Request(func() { calls++ })
	require.NotZero(t, h)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Pending())

	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Pending())

	assert.Equal(t, 0, s.Tick())
	assert.Equal(t, 1, calls, "requests run once")
	assert.Equal(t, uint64(2), s.Frame())
}

func TestHandlesAreUnique(t *testing.T) {
	s := New()
	seen := map[Handle]bool{}
	for i := 0; i < 10; i++ {
		h := s.Request(func() {})
		assert.False(t, seen[h])
		seen[h] = true
		if i%2 == 0 {
			s.Tick()
		}
	}
	assert.Equal(t, Handle(0), s.Request(nil))
}

func TestCancel(t *testing.T) {
	s := New()
	var order []string
	a := s.Request(func() { order = append(order, "a") })
	s.Request(func() { order = append(order, "b") })

	assert.True(t, s.Cancel(a))
	assert.False(t, s.Cancel(a), "second cancel is a no-op")
	assert.False(t, s.Cancel(0))

	s.Tick()
	assert.Equal(t, []string{"b"}, order)
}

func TestRequestDuringTickDefers(t *testing.T) {
	s := New()
	n := 0
	var step func()
	step = func() {
		n++
		if n < 3 {
			s.Request(step)
		}
	}
	s.Request(step)

	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, s.Tick())
	assert.Equal(t, 3, n)
}

func TestCancelLaterEntryOfRunningBatch(t *testing.T) {
	s := New()
	var second Handle
	ran := []string{}
	s.Request(func() {
		ran = append(ran, "first")
		assert.True(t, s.Cancel(second))
	})
	second = s.Request(func() { ran = append(ran, "second") })

	assert.Equal(t, 1, s.Tick())
	assert.Equal(t, []string{"first"}, ran)
	assert.Equal(t, 0, s.Pending())
}
