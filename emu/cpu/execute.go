package cpu

import (
	"fmt"

	"github.com/beanboi7/chyp8/emu/keypad"
)

// execute applies one instruction. The program counter already points at
// the following instruction when it is called.
func (emu *EMU) execute(ins Instruction) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpSys:
		return fmt.Errorf("%w: machine code routine at $%03X", ErrUnsupportedOpcode, ins.NNN)
	case OpClear:
		emu.display.Clear()
	case OpReturn:
		if len(emu.stack) == 0 {
			return ErrStackUnderflow
		}
		top := len(emu.stack) - 1
		emu.pc = emu.stack[top]
		emu.stack = emu.stack[:top]
	case OpJump:
		emu.pc = ins.NNN
	case OpCall:
		emu.stack = append(emu.stack, emu.pc)
		emu.pc = ins.NNN
	case OpSkipEqConst:
		emu.skipIf(emu.v[x] == ins.NN)
	case OpSkipNeqConst:
		emu.skipIf(emu.v[x] != ins.NN)
	case OpSkipEq:
		emu.skipIf(emu.v[x] == emu.v[y])
	case OpSkipNeq:
		emu.skipIf(emu.v[x] != emu.v[y])
	case OpLoad:
		emu.v[x] = ins.NN
	case OpAddConst:
		emu.v[x] += ins.NN
	case OpLoadRegister:
		emu.v[x] = emu.v[y]
	case OpOr:
		emu.v[x] |= emu.v[y]
	case OpAnd:
		emu.v[x] &= emu.v[y]
	case OpXor:
		emu.v[x] ^= emu.v[y]

	// the flag is written before the result, so VF as a destination ends
	// up holding the result
	case OpAdd:
		sum := uint16(emu.v[x]) + uint16(emu.v[y])
		emu.v[flag] = boolToByte(sum > 0xFF)
		emu.v[x] = uint8(sum)
	case OpSub:
		vx, vy := emu.v[x], emu.v[y]
		emu.v[flag] = boolToByte(vx >= vy)
		emu.v[x] = vx - vy
	case OpSubn:
		vx, vy := emu.v[x], emu.v[y]
		emu.v[flag] = boolToByte(vy >= vx)
		emu.v[x] = vy - vx
	case OpShiftRight:
		vx := emu.v[x]
		emu.v[flag] = vx & 0x01
		emu.v[x] = vx >> 1
	case OpShiftLeft:
		vx := emu.v[x]
		emu.v[flag] = vx >> 7
		emu.v[x] = vx << 1

	case OpLoadIndex:
		emu.I = ins.NNN
	case OpJumpPlusV0:
		emu.pc = ins.NNN + uint16(emu.v[0])
	case OpRandom:
		emu.v[x] = uint8(emu.rng.Intn(256)) & ins.NN
	case OpDraw:
		return emu.draw(emu.v[x], emu.v[y], ins.N)
	case OpKeyPressSkip:
		emu.skipIf(emu.surface.IsKeyDown(keypad.FromRegister(emu.v[x])))
	case OpKeyNotPressSkip:
		emu.skipIf(emu.surface.IsKeyUp(keypad.FromRegister(emu.v[x])))
	case OpDelayTimerLoadFrom:
		emu.v[x] = emu.delayTimer
	case OpKeyLoad:
		key, ok := emu.surface.PollKey()
		if !ok {
			// run this instruction again next cycle
			emu.pc -= 2
			return nil
		}
		emu.v[x] = uint8(key)
	case OpDelayTimerLoadInto:
		emu.delayTimer = emu.v[x]
	case OpSoundLoad:
		emu.soundTimer = emu.v[x]
	case OpAddIndex:
		emu.I += uint16(emu.v[x])
	case OpLocateSprite:
		emu.I = FontOffset + uint16(emu.v[x])*FontGlyphSize
	case OpLoadBcd:
		mem, err := emu.span(emu.I, 3)
		if err != nil {
			return err
		}
		vx := emu.v[x]
		mem[0] = vx / 100
		mem[1] = vx / 10 % 10
		mem[2] = vx % 10
	case OpStoreRegisters:
		mem, err := emu.span(emu.I, int(x)+1)
		if err != nil {
			return err
		}
		copy(mem, emu.v[:x+1])
	case OpReadRegisters:
		mem, err := emu.span(emu.I, int(x)+1)
		if err != nil {
			return err
		}
		copy(emu.v[:x+1], mem)
	default:
		return opCodeError(ins.Word)
	}
	return nil
}

// draw XORs an n byte sprite from memory at I onto the screen at vx, vy.
// VF ends up 1 if any lit pixel was turned off.
func (emu *EMU) draw(vx, vy, n uint8) error {
	sprite, err := emu.span(emu.I, int(n))
	if err != nil {
		return err
	}

	emu.v[flag] = 0
	for row, bits := range sprite {
		for col := 0; col < 8; col++ {
			bit := bits&(0x80>>col) != 0
			if emu.display.Set(int(vx)+col, int(vy)+row, bit) {
				emu.v[flag] = 1
			}
		}
	}
	return nil
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

// span returns n bytes of memory starting at addr.
func (emu *EMU) span(addr uint16, n int) ([]uint8, error) {
	start := int(addr)
	if start+n > MemorySize {
		return nil, fmt.Errorf("%w: %d bytes at $%03X", ErrMemoryBounds, n, addr)
	}
	return emu.memory[start : start+n], nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
