package cpu

import (
	"bufio"
	"fmt"
	"io"
)

// Disassemble writes a listing of rom as it would sit in memory, one line
// per instruction word. Words that do not decode are listed as data.
func Disassemble(w io.Writer, rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	out := bufio.NewWriter(w)
	for offset := 0; offset < len(rom); offset += 2 {
		addr := ROMOffset + offset

		if offset+1 == len(rom) {
			fmt.Fprintf(out, "%03X  %02X    db $%02X\n", addr, rom[offset], rom[offset])
			break
		}

		hi, lo := rom[offset], rom[offset+1]
		word := uint16(hi)<<8 | uint16(lo)

		ins, err := Decode(word)
		text := ins.String()
		if err != nil {
			text = fmt.Sprintf("db $%02X, $%02X", hi, lo)
		}
		fmt.Fprintf(out, "%03X  %04X  %s\n", addr, word, text)
	}
	return out.Flush()
}
