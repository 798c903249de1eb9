package cpu

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic looks the word up in the retrogolib CHIP-8 opcode table, which
// names instructions the way assemblers do (cls, jp, ld, drw...).
func (ins Instruction) Mnemonic() string {
	for _, op := range chip8.Opcodes[int(ins.Word>>12)] {
		if op.Instruction != nil && op.Info.Mask&ins.Word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return strings.ToLower(ins.Op.String())
}

// String renders the instruction as assembly, for example "DRW V1, V2, $5".
func (ins Instruction) String() string {
	name := strings.ToUpper(ins.Mnemonic())
	if args := ins.operands(); args != "" {
		return name + " " + args
	}
	return name
}

func (ins Instruction) operands() string {
	switch ins.Op {
	case OpSys, OpJump, OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case OpSkipEqConst, OpSkipNeqConst, OpLoad, OpAddConst, OpRandom:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case OpSkipEq, OpSkipNeq, OpLoadRegister, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case OpShiftRight, OpShiftLeft, OpKeyPressSkip, OpKeyNotPressSkip:
		return fmt.Sprintf("V%X", ins.X)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case OpJumpPlusV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case OpDelayTimerLoadFrom:
		return fmt.Sprintf("V%X, DT", ins.X)
	case OpKeyLoad:
		return fmt.Sprintf("V%X, K", ins.X)
	case OpDelayTimerLoadInto:
		return fmt.Sprintf("DT, V%X", ins.X)
	case OpSoundLoad:
		return fmt.Sprintf("ST, V%X", ins.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", ins.X)
	case OpLocateSprite:
		return fmt.Sprintf("F, V%X", ins.X)
	case OpLoadBcd:
		return fmt.Sprintf("B, V%X", ins.X)
	case OpStoreRegisters:
		return fmt.Sprintf("[I], V%X", ins.X)
	case OpReadRegisters:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
