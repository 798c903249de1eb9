package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	ErrStackUnderflow    = errors.New("return with empty call stack")
	ErrMemoryBounds      = errors.New("memory access out of bounds")
	ErrROMTooLarge       = errors.New("rom too large")
)

func opCodeError(word uint16) error {
	return fmt.Errorf("%w: %04X", ErrUnknownOpcode, word)
}

// Fault stops the instruction loop. It records where the failing
// instruction was fetched from and what it was.
type Fault struct {
	PC          uint16
	Instruction Instruction
	Err         error
}

func (f *Fault) Error() string {
	if f.Instruction.Op == OpUnknown {
		return fmt.Sprintf("fault at $%03X: %v", f.PC, f.Err)
	}
	return fmt.Sprintf("fault at $%03X executing %s (%04X): %v",
		f.PC, f.Instruction, f.Instruction.Word, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
