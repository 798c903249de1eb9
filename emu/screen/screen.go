// Package screen presents the CHIP-8 screen in a desktop window and reads the
// keypad from the keyboard. pixelgl requires every call to happen on the
// main thread, inside pixelgl.Run.
package screen

import (
	"fmt"
	"time"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const (
	Title        = "chyp8 - Press ESC to exit"
	DefaultScale = 8
)

// KeyMap binds every keypad key to the button at the same place in the
// 1234 / QWER / ASDF / ZXCV block.
var KeyMap = map[keypad.Key]pixelgl.Button{
	keypad.Key1: pixelgl.Key1, keypad.Key2: pixelgl.Key2, keypad.Key3: pixelgl.Key3, keypad.KeyC: pixelgl.Key4,
	keypad.Key4: pixelgl.KeyQ, keypad.Key5: pixelgl.KeyW, keypad.Key6: pixelgl.KeyE, keypad.KeyD: pixelgl.KeyR,
	keypad.Key7: pixelgl.KeyA, keypad.Key8: pixelgl.KeyS, keypad.Key9: pixelgl.KeyD, keypad.KeyE: pixelgl.KeyF,
	keypad.KeyA: pixelgl.KeyZ, keypad.Key0: pixelgl.KeyX, keypad.KeyB: pixelgl.KeyC, keypad.KeyF: pixelgl.KeyV,
}

// Window implements cpu.Surface on a pixelgl window.
type Window struct {
	*pixelgl.Window
	scale  float64
	ticker *time.Ticker
	imd    *imdraw.IMDraw
}

// Open creates a window of display.Width x display.Height pixels, each
// drawn scale screen pixels wide. Present is paced to refresh frames per
// second, 0 leaves pacing to vsync.
func Open(scale, refresh int) (*Window, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	cfg := pixelgl.WindowConfig{
		Title:  Title,
		Bounds: pixel.R(0, 0, float64(display.Width*scale), float64(display.Height*scale)),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{
		Window: win,
		scale:  float64(scale),
		imd:    imdraw.New(nil),
	}
	if refresh > 0 {
		w.ticker = time.NewTicker(time.Second / time.Duration(refresh))
	}
	w.Clear(colornames.Black)
	return w, nil
}

// Close stops pacing and destroys the window.
func (w *Window) Close() error {
	if w.ticker != nil {
		w.ticker.Stop()
	}
	w.Destroy()
	return nil
}

// IsRunning reports false once the window was closed or ESC is held.
func (w *Window) IsRunning() bool {
	return !w.Closed() && !w.Pressed(pixelgl.KeyEscape)
}

func (w *Window) IsKeyDown(key keypad.Key) bool {
	button, ok := KeyMap[key]
	return ok && w.Pressed(button)
}

func (w *Window) IsKeyUp(key keypad.Key) bool {
	return !w.IsKeyDown(key)
}

// PollKey returns the lowest keypad key that is held down, including keys
// already held before the call.
func (w *Window) PollKey() (keypad.Key, bool) {
	return firstPressed(w.Pressed)
}

func firstPressed(pressed func(pixelgl.Button) bool) (keypad.Key, bool) {
	for key := keypad.Key0; key < keypad.Count; key++ {
		if pressed(KeyMap[key]) {
			return key, true
		}
	}
	return 0, false
}
