package screen

import (
	"github.com/beanboi7/chyp8/emu/display"
	"github.com/faiface/pixel"
	"golang.org/x/image/colornames"
)

// Present draws the lit pixels as white squares on black, swaps buffers
// and polls the keyboard, then waits for the next refresh tick.
func (w *Window) Present(frame display.Frame) error {
	w.imd.Clear()
	w.imd.Color = colornames.White

	for y := 0; y < display.Height; y++ {
		// pixel's origin is the bottom left corner
		top := float64(display.Height-y) * w.scale
		for x := 0; x < display.Width; x++ {
			if !frame.At(x, y) {
				continue
			}
			left := float64(x) * w.scale
			w.imd.Push(pixel.V(left, top-w.scale), pixel.V(left+w.scale, top))
			w.imd.Rectangle(0)
		}
	}

	w.Clear(colornames.Black)
	w.imd.Draw(w)
	w.Update()

	if w.ticker != nil {
		<-w.ticker.C
	}
	return nil
}
