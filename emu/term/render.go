package term

import (
	"strings"

	"github.com/beanboi7/chyp8/emu/display"
)

// Rows is the number of text lines a frame occupies. Every line carries two
// pixel rows.
const Rows = display.Height / 2

// glyph returns the half block showing the pixel pair top, bottom.
func glyph(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// renderLines converts a frame to Rows lines of Width half block glyphs.
func renderLines(frame *display.Frame) []string {
	lines := make([]string, Rows)

	var b strings.Builder
	for row := 0; row < Rows; row++ {
		b.Reset()
		for x := 0; x < display.Width; x++ {
			b.WriteRune(glyph(frame.At(x, row*2), frame.At(x, row*2+1)))
		}
		lines[row] = b.String()
	}
	return lines
}

// changedLines returns the indexes of the lines in next that differ from
// prev. A nil prev marks every line as changed.
func changedLines(prev, next []string) []int {
	var changed []int
	for i, line := range next {
		if prev == nil || i >= len(prev) || prev[i] != line {
			changed = append(changed, i)
		}
	}
	return changed
}
