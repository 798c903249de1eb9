// Package term presents the CHIP-8 screen in a terminal, two pixel rows per
// text line, and reads the keypad from termbox key events.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultRefresh is the presentation rate in Hz.
	DefaultRefresh = 60

	// terminals only report key presses, so a key is considered held for
	// this long after its last event arrived
	holdDuration = time.Second / 5

	eventQueueSize = 64
)

// Screen receives the cells of a frame. termbox implements it in Open.
type Screen interface {
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	Flush() error
}

type termboxScreen struct{}

func (termboxScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (termboxScreen) Flush() error {
	return termbox.Flush()
}

type typedKey struct {
	key keypad.Key
	at  time.Time
}

// Terminal implements cpu.Surface.
type Terminal struct {
	ctx    context.Context
	events <-chan termbox.Event
	screen Screen
	logger *log.Logger

	// closed by the event pump once termbox stopped polling
	pumpDone chan struct{}
	opened   bool

	refresh int
	ticker  *time.Ticker
	now     func() time.Time

	lastPressed [keypad.Count]time.Time
	typed       []typedKey
	quit        bool
	previous    []string
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithRefresh paces Present to hz frames per second. 0 disables pacing.
func WithRefresh(hz int) Option {
	return func(t *Terminal) {
		t.refresh = hz
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// New returns a terminal surface reading key events from events and
// drawing to screen. The run stops when ctx is done, on Ctrl-C or ESC, or
// when events is closed.
func New(ctx context.Context, events <-chan termbox.Event, screen Screen, opts ...Option) *Terminal {
	t := &Terminal{
		ctx:     ctx,
		events:  events,
		screen:  screen,
		refresh: DefaultRefresh,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.refresh > 0 {
		t.ticker = time.NewTicker(time.Second / time.Duration(t.refresh))
	}
	return t
}

// Open initialises termbox and returns a surface drawing to it. Close must
// be called to restore the terminal.
func Open(ctx context.Context, opts ...Option) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		termbox.Close()
		return nil, fmt.Errorf("clearing terminal: %w", err)
	}

	events := make(chan termbox.Event, eventQueueSize)
	t := New(ctx, events, termboxScreen{}, opts...)
	t.opened = true
	t.pumpDone = make(chan struct{})

	go func() {
		defer close(t.pumpDone)
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			// the pump never blocks on a full queue, Interrupt relies on
			// it waiting in PollEvent
			select {
			case events <- ev:
			default:
			}
		}
	}()

	if t.logger != nil {
		t.logger.Debug("Terminal opened", log.Int("refresh", t.refresh))
	}
	return t, nil
}

// Close stops the event pump and restores the terminal.
func (t *Terminal) Close() error {
	if t.ticker != nil {
		t.ticker.Stop()
	}
	if !t.opened {
		return nil
	}

	termbox.Interrupt()
	<-t.pumpDone
	termbox.Close()
	t.opened = false
	return nil
}

// IsRunning handles pending key events and reports whether the user asked
// to quit.
func (t *Terminal) IsRunning() bool {
	if t.ctx.Err() != nil || t.quit {
		return false
	}

	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.quit = true
				return false
			}
			t.handle(ev)
		default:
			return !t.quit
		}
	}
}

func (t *Terminal) handle(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyCtrlC || ev.Key == termbox.KeyEsc {
			t.quit = true
			return
		}
		if ev.Ch == 0 {
			return
		}
		if key, ok := keypad.FromRune(ev.Ch); ok {
			t.press(key)
		}

	case termbox.EventError:
		if t.logger != nil {
			t.logger.Error("Reading terminal input failed", log.Err(ev.Err))
		}
		t.quit = true
	}
}

func (t *Terminal) press(key keypad.Key) {
	now := t.now()
	t.lastPressed[key] = now
	if len(t.typed) == keypad.Count {
		t.typed = t.typed[1:]
	}
	t.typed = append(t.typed, typedKey{key: key, at: now})
}

func (t *Terminal) IsKeyDown(key keypad.Key) bool {
	if !key.Valid() {
		return false
	}
	last := t.lastPressed[key]
	return !last.IsZero() && t.now().Sub(last) < holdDuration
}

func (t *Terminal) IsKeyUp(key keypad.Key) bool {
	return !t.IsKeyDown(key)
}

// PollKey returns typed keys in the order they arrived. Keys whose hold
// window has lapsed are dropped.
func (t *Terminal) PollKey() (keypad.Key, bool) {
	now := t.now()
	for len(t.typed) > 0 {
		next := t.typed[0]
		t.typed = t.typed[1:]
		if now.Sub(next.at) < holdDuration {
			return next.key, true
		}
	}
	return 0, false
}

// Present redraws the lines that changed since the previous frame and
// then waits for the next refresh tick.
func (t *Terminal) Present(frame display.Frame) error {
	lines := renderLines(&frame)
	for _, row := range changedLines(t.previous, lines) {
		x := 0
		for _, ch := range lines[row] {
			t.screen.SetCell(x, row, ch, termbox.ColorDefault, termbox.ColorDefault)
			x++
		}
	}
	if err := t.screen.Flush(); err != nil {
		return fmt.Errorf("flushing screen: %w", err)
	}
	t.previous = lines

	if t.ticker != nil {
		select {
		case <-t.ticker.C:
		case <-t.ctx.Done():
		}
	}
	return nil
}
