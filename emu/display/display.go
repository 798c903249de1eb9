// Package display holds the monochrome CHIP-8 pixel buffer.
package display

import "strings"

const (
	Width  = 64
	Height = 32
)

// Frame is a read-only copy of the buffer, row major.
type Frame [Width * Height]bool

// At returns the pixel at x, y. Coordinates must be on screen.
func (f *Frame) At(x, y int) bool {
	return f[y*Width+x]
}

// Lit counts the pixels that are on.
func (f *Frame) Lit() int {
	n := 0
	for _, on := range f {
		if on {
			n++
		}
	}
	return n
}

// String draws the frame with '#' for lit pixels and '.' for dark ones,
// one line per row.
func (f *Frame) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.At(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Buffer is the screen the engine draws into. Coordinates wrap around both
// edges.
type Buffer struct {
	pixels Frame
}

func New() *Buffer {
	return &Buffer{}
}

// Set XORs bit into the pixel at x, y (wrapped, negative coordinates count
// back from the far edge) and reports whether a lit pixel was turned off.
func (b *Buffer) Set(x, y int, bit bool) bool {
	x = wrap(x, Width)
	y = wrap(y, Height)
	i := y*Width + x

	prev := b.pixels[i]
	b.pixels[i] = prev != bit

	return prev && bit
}

func wrap(v, size int) int {
	return (v%size + size) % size
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.pixels = Frame{}
}

// Snapshot copies the current pixels.
func (b *Buffer) Snapshot() Frame {
	return b.pixels
}
