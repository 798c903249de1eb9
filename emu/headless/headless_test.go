package headless

import (
	"errors"
	"testing"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/retroenv/retrogolib/assert"
)

func TestMaxCycles(t *testing.T) {
	s := New()
	s.MaxCycles = 3

	n := 0
	for s.IsRunning() {
		n++
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.Cycles())
}

func TestStop(t *testing.T) {
	s := New()
	assert.True(t, s.IsRunning())
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestScript(t *testing.T) {
	s := New(
		Event{At: 1, Key: keypad.Key5, Action: Press},
		Event{At: 2, Key: keypad.Key5, Action: Release},
		Event{At: 2, Key: keypad.KeyA, Action: Type},
	)

	assert.True(t, s.IsRunning()) // cycle 0
	assert.True(t, s.IsKeyUp(keypad.Key5))
	_, ok := s.PollKey()
	assert.False(t, ok)

	assert.True(t, s.IsRunning()) // cycle 1
	assert.True(t, s.IsKeyDown(keypad.Key5))

	assert.True(t, s.IsRunning()) // cycle 2
	assert.True(t, s.IsKeyUp(keypad.Key5))
	assert.False(t, s.IsKeyDown(keypad.KeyA))

	key, ok := s.PollKey()
	assert.True(t, ok)
	assert.Equal(t, keypad.Key5, key)
	key, ok = s.PollKey()
	assert.True(t, ok)
	assert.Equal(t, keypad.KeyA, key)
	_, ok = s.PollKey()
	assert.False(t, ok)
}

func TestPresentCapture(t *testing.T) {
	s := New()
	s.Capture = true

	buf := display.New()
	assert.NoError(t, s.Present(buf.Snapshot()))
	buf.Set(1, 1, true)
	assert.NoError(t, s.Present(buf.Snapshot()))

	frames := s.Frames()
	assert.Equal(t, 2, len(frames))
	assert.False(t, frames[0].At(1, 1))
	assert.True(t, frames[1].At(1, 1))

	last := s.Last()
	assert.True(t, last.At(1, 1))
	assert.Equal(t, 2, s.Presented())
}

func TestPresentFailure(t *testing.T) {
	s := New()
	s.FailAt = 2

	assert.NoError(t, s.Present(display.Frame{}))
	err := s.Present(display.Frame{})
	assert.True(t, errors.Is(err, ErrPresent))
}
