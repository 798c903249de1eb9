// Package headless provides a Surface that draws nowhere. Keys come from a
// script of events and every presented frame is recorded, which makes
// runs reproducible.
package headless

import (
	"errors"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/beanboi7/chyp8/emu/keypad"
)

// Action is what an Event does to its key.
type Action int

const (
	// Press holds the key down and makes it available to PollKey.
	Press Action = iota
	// Release lets go of the key.
	Release
	// Type makes the key available to PollKey without holding it down.
	Type
)

// Event applies Action to Key at the start of cycle At (counting from 0).
type Event struct {
	At     int
	Key    keypad.Key
	Action Action
}

// ErrPresent is returned by Present once FailAt is reached.
var ErrPresent = errors.New("headless present failed")

// Surface is the headless implementation of cpu.Surface.
type Surface struct {
	// MaxCycles stops the run after that many cycles. 0 runs forever.
	MaxCycles int
	// Capture keeps every presented frame, not just the last one.
	Capture bool
	// FailAt makes the n-th call to Present (1 based) fail. 0 never fails.
	FailAt int

	script    []Event
	cycle     int
	down      [keypad.Count]bool
	available []keypad.Key
	stopped   bool

	presented int
	last      display.Frame
	frames    []display.Frame
}

// New returns a surface that will replay script. Events must be ordered
// by At.
func New(script ...Event) *Surface {
	return &Surface{script: script}
}

// IsRunning applies the events due this cycle and reports whether another
// cycle should run.
func (s *Surface) IsRunning() bool {
	if s.stopped || (s.MaxCycles > 0 && s.cycle >= s.MaxCycles) {
		return false
	}

	for len(s.script) > 0 && s.script[0].At <= s.cycle {
		s.apply(s.script[0])
		s.script = s.script[1:]
	}
	s.cycle++
	return true
}

func (s *Surface) apply(ev Event) {
	switch ev.Action {
	case Press:
		s.down[ev.Key] = true
		s.available = append(s.available, ev.Key)
	case Release:
		s.down[ev.Key] = false
	case Type:
		s.available = append(s.available, ev.Key)
	}
}

// Stop makes the next IsRunning return false.
func (s *Surface) Stop() {
	s.stopped = true
}

func (s *Surface) IsKeyDown(key keypad.Key) bool {
	return key.Valid() && s.down[key]
}

func (s *Surface) IsKeyUp(key keypad.Key) bool {
	return !s.IsKeyDown(key)
}

// PollKey hands out queued keys in the order they arrived.
func (s *Surface) PollKey() (keypad.Key, bool) {
	if len(s.available) == 0 {
		return 0, false
	}
	key := s.available[0]
	s.available = s.available[1:]
	return key, true
}

// Present records the frame.
func (s *Surface) Present(frame display.Frame) error {
	s.presented++
	if s.FailAt > 0 && s.presented >= s.FailAt {
		return ErrPresent
	}

	s.last = frame
	if s.Capture {
		s.frames = append(s.frames, frame)
	}
	return nil
}

// Cycles is the number of times IsRunning allowed a cycle.
func (s *Surface) Cycles() int {
	return s.cycle
}

// Presented is the number of Present calls.
func (s *Surface) Presented() int {
	return s.presented
}

// Last is the most recently presented frame.
func (s *Surface) Last() display.Frame {
	return s.last
}

// Frames is every captured frame, in order. Empty unless Capture is set.
func (s *Surface) Frames() []display.Frame {
	return s.frames
}
