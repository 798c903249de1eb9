// Package keypad names the sixteen keys of the CHIP-8 hex keypad and maps
// them onto the left hand block of a QWERTY keyboard.
package keypad

import (
	"fmt"
	"strings"
)

// Key is one of the 16 logical keys, 0x0 to 0xF.
type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Count is the number of keys on the keypad.
const Count = 16

// FromRegister masks a register value down to a key.
func FromRegister(v uint8) Key {
	return Key(v & 0x0F)
}

func (k Key) String() string {
	return fmt.Sprintf("%X", uint8(k))
}

// Valid reports whether k names a key on the pad.
func (k Key) Valid() bool {
	return k < Count
}

// Parse reads a single hex digit such as "a" or "F".
func Parse(s string) (Key, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid key %q", s)
	}
	i := strings.IndexByte("0123456789ABCDEF", strings.ToUpper(s)[0])
	if i < 0 {
		return 0, fmt.Errorf("invalid key %q", s)
	}
	return Key(i), nil
}

// Layout positions the keypad
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// on the keys 1234 / qwer / asdf / zxcv.
var Layout = map[rune]Key{
	'1': Key1, '2': Key2, '3': Key3, '4': KeyC,
	'q': Key4, 'w': Key5, 'e': Key6, 'r': KeyD,
	'a': Key7, 's': Key8, 'd': Key9, 'f': KeyE,
	'z': KeyA, 'x': Key0, 'c': KeyB, 'v': KeyF,
}

// FromRune looks up a typed character in Layout, ignoring case.
func FromRune(r rune) (Key, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, ok := Layout[r]
	return k, ok
}
