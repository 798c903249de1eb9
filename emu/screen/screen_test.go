package screen

import (
	"testing"

	"github.com/beanboi7/chyp8/emu/keypad"
	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyMapCoversKeypad(t *testing.T) {
	assert.Len(t, KeyMap, keypad.Count)

	buttons := map[pixelgl.Button]bool{}
	for key := keypad.Key0; key < keypad.Count; key++ {
		button, ok := KeyMap[key]
		assert.True(t, ok)
		buttons[button] = true
	}
	assert.Len(t, buttons, keypad.Count)
}

func TestFirstPressed(t *testing.T) {
	held := map[pixelgl.Button]bool{}
	pressed := func(b pixelgl.Button) bool { return held[b] }

	_, ok := firstPressed(pressed)
	assert.False(t, ok)

	// a key held since before the wait started is returned
	held[pixelgl.KeyV] = true
	key, ok := firstPressed(pressed)
	assert.True(t, ok)
	assert.Equal(t, keypad.KeyF, key)

	held[pixelgl.KeyX] = true
	key, ok = firstPressed(pressed)
	assert.True(t, ok)
	assert.Equal(t, keypad.Key0, key)
}
