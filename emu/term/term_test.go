package term

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrogolib/assert"
)

type recordingScreen struct {
	cells   map[[2]int]rune
	set     int
	flushes int
	err     error
}

func newRecordingScreen() *recordingScreen {
	return &recordingScreen{cells: map[[2]int]rune{}}
}

func (s *recordingScreen) SetCell(x, y int, ch rune, _, _ termbox.Attribute) {
	s.cells[[2]int{x, y}] = ch
	s.set++
}

func (s *recordingScreen) Flush() error {
	s.flushes++
	return s.err
}

func (s *recordingScreen) line(y int) string {
	var b strings.Builder
	for x := 0; x < display.Width; x++ {
		b.WriteRune(s.cells[[2]int{x, y}])
	}
	return b.String()
}

func newTestTerminal(ctx context.Context, events ...termbox.Event) (*Terminal, *recordingScreen) {
	queue := make(chan termbox.Event, len(events)+1)
	for _, ev := range events {
		queue <- ev
	}
	screen := newRecordingScreen()
	return New(ctx, queue, screen, WithRefresh(0)), screen
}

func typed(ch rune) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Ch: ch}
}

func special(key termbox.Key) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Key: key}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, ' ', glyph(false, false))
	assert.Equal(t, '▀', glyph(true, false))
	assert.Equal(t, '▄', glyph(false, true))
	assert.Equal(t, '█', glyph(true, true))
}

func TestRenderLines(t *testing.T) {
	buf := display.New()
	buf.Set(0, 0, true)
	buf.Set(1, 1, true)
	buf.Set(2, 0, true)
	buf.Set(2, 1, true)
	buf.Set(63, 31, true)
	frame := buf.Snapshot()

	lines := renderLines(&frame)
	assert.Len(t, lines, Rows)
	assert.True(t, strings.HasPrefix(lines[0], "▀▄█ "))
	assert.True(t, strings.HasSuffix(lines[Rows-1], " ▄"))
	for _, line := range lines {
		assert.Equal(t, display.Width, len([]rune(line)))
	}
	assert.Equal(t, strings.Repeat(" ", display.Width), lines[1])
}

func TestChangedLines(t *testing.T) {
	next := []string{"a", "b", "c"}
	assert.Equal(t, []int{0, 1, 2}, changedLines(nil, next))
	assert.Equal(t, []int{1}, changedLines([]string{"a", "x", "c"}, next))
	assert.Len(t, changedLines(next, next), 0)
}

func TestKeyEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []termbox.Event
		keys   []keypad.Key
		quit   bool
	}{
		{"layout", []termbox.Event{typed('1'), typed('q'), typed('a'), typed('z')},
			[]keypad.Key{keypad.Key1, keypad.Key4, keypad.Key7, keypad.KeyA}, false},
		{"upper case", []termbox.Event{typed('V')}, []keypad.Key{keypad.KeyF}, false},
		{"unmapped", []termbox.Event{typed('p'), typed('9')}, nil, false},
		{"arrow key ignored", []termbox.Event{special(termbox.KeyArrowUp), typed('x')}, []keypad.Key{keypad.Key0}, false},
		{"ctrl c", []termbox.Event{typed('w'), special(termbox.KeyCtrlC)}, []keypad.Key{keypad.Key5}, true},
		{"escape", []termbox.Event{special(termbox.KeyEsc)}, nil, true},
		{"resize ignored", []termbox.Event{{Type: termbox.EventResize, Width: 80, Height: 24}}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(context.Background(), tt.events...)
			assert.Equal(t, !tt.quit, term.IsRunning())

			var keys []keypad.Key
			for {
				key, ok := term.PollKey()
				if !ok {
					break
				}
				keys = append(keys, key)
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestKeysHeldForHoldDuration(t *testing.T) {
	term, _ := newTestTerminal(context.Background(), typed('w'), typed('x'))

	now := time.Unix(100, 0)
	term.now = func() time.Time { return now }

	assert.True(t, term.IsRunning())
	assert.True(t, term.IsKeyDown(keypad.Key5))
	assert.True(t, term.IsKeyDown(keypad.Key0))
	assert.True(t, term.IsKeyUp(keypad.Key1))

	key, ok := term.PollKey()
	assert.True(t, ok)
	assert.Equal(t, keypad.Key5, key)

	now = now.Add(holdDuration)
	assert.True(t, term.IsKeyUp(keypad.Key5))
	assert.True(t, term.IsKeyUp(keypad.Key0))

	// x was typed within the same window but is no longer held
	_, ok = term.PollKey()
	assert.False(t, ok)

	// nothing pending keeps running
	assert.True(t, term.IsRunning())
}

func TestPollKeySkipsLapsedKeys(t *testing.T) {
	events := make(chan termbox.Event, 2)
	term := New(context.Background(), events, newRecordingScreen(), WithRefresh(0))

	now := time.Unix(100, 0)
	term.now = func() time.Time { return now }

	events <- typed('w')
	assert.True(t, term.IsRunning())

	now = now.Add(time.Hour)
	events <- typed('e')
	assert.True(t, term.IsRunning())

	key, ok := term.PollKey()
	assert.True(t, ok)
	assert.Equal(t, keypad.Key6, key)
	_, ok = term.PollKey()
	assert.False(t, ok)
}

func TestQuitIsSticky(t *testing.T) {
	term, _ := newTestTerminal(context.Background(), special(termbox.KeyCtrlC), typed('w'))
	assert.False(t, term.IsRunning())
	assert.False(t, term.IsRunning())
}

func TestContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	term, _ := newTestTerminal(ctx)
	assert.True(t, term.IsRunning())
	cancel()
	assert.False(t, term.IsRunning())
}

func TestClosedEventsStop(t *testing.T) {
	events := make(chan termbox.Event)
	close(events)
	term := New(context.Background(), events, newRecordingScreen(), WithRefresh(0))
	assert.False(t, term.IsRunning())
}

func TestErrorEventStops(t *testing.T) {
	term, _ := newTestTerminal(context.Background(), termbox.Event{Type: termbox.EventError, Err: errors.New("broken")})
	assert.False(t, term.IsRunning())
}

func TestPresentDrawsChangedLines(t *testing.T) {
	term, screen := newTestTerminal(context.Background())

	buf := display.New()
	assert.NoError(t, term.Present(buf.Snapshot()))
	assert.Equal(t, Rows*display.Width, screen.set)
	assert.Equal(t, 1, screen.flushes)

	screen.set = 0
	assert.NoError(t, term.Present(buf.Snapshot()))
	assert.Equal(t, 0, screen.set)
	assert.Equal(t, 2, screen.flushes)

	buf.Set(5, 7, true)
	assert.NoError(t, term.Present(buf.Snapshot()))
	assert.Equal(t, display.Width, screen.set)
	assert.Equal(t, '▄', screen.cells[[2]int{5, 3}])
	assert.Equal(t, "     ▄", strings.TrimRight(screen.line(3), " "))
}

func TestPresentFlushError(t *testing.T) {
	term, screen := newTestTerminal(context.Background())
	screen.err = errors.New("gone")

	err := term.Present(display.Frame{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, screen.err))
}

func TestCloseWithoutOpen(t *testing.T) {
	term, _ := newTestTerminal(context.Background())
	assert.NoError(t, term.Close())
}
