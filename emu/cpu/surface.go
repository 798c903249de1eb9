package cpu

import (
	"github.com/beanboi7/chyp8/emu/display"
	"github.com/beanboi7/chyp8/emu/keypad"
)

// Surface is everything the engine needs from the outside world: a place
// to show frames, the state of the keypad and a stop signal. The engine
// never mutates a Surface beyond presenting frames to it.
type Surface interface {
	// IsRunning is checked once before every cycle. false ends Run.
	IsRunning() bool

	IsKeyDown(key keypad.Key) bool
	IsKeyUp(key keypad.Key) bool

	// PollKey must not block. ok is false when no key is available yet.
	PollKey() (key keypad.Key, ok bool)

	// Present shows one frame. An error stops the engine.
	Present(frame display.Frame) error
}
