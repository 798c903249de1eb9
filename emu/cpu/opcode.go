package cpu

// Op identifies one of the 35 CHIP-8 instructions. The zero value is
// OpUnknown and never comes out of a successful Decode.
type Op uint8

const (
	OpUnknown Op = iota
	OpSys                // 0NNN
	OpClear              // 00E0
	OpReturn             // 00EE
	OpJump               // 1NNN
	OpCall               // 2NNN
	OpSkipEqConst        // 3XNN
	OpSkipNeqConst       // 4XNN
	OpSkipEq             // 5XY0
	OpLoad               // 6XNN
	OpAddConst           // 7XNN
	OpLoadRegister       // 8XY0
	OpOr                 // 8XY1
	OpAnd                // 8XY2
	OpXor                // 8XY3
	OpAdd                // 8XY4
	OpSub                // 8XY5
	OpShiftRight         // 8XY6
	OpSubn               // 8XY7
	OpShiftLeft          // 8XYE
	OpSkipNeq            // 9XY0
	OpLoadIndex          // ANNN
	OpJumpPlusV0         // BNNN
	OpRandom             // CXNN
	OpDraw               // DXYN
	OpKeyPressSkip       // EX9E
	OpKeyNotPressSkip    // EXA1
	OpDelayTimerLoadFrom // FX07
	OpKeyLoad            // FX0A
	OpDelayTimerLoadInto // FX15
	OpSoundLoad          // FX18
	OpAddIndex           // FX1E
	OpLocateSprite       // FX29
	OpLoadBcd            // FX33
	OpStoreRegisters     // FX55
	OpReadRegisters      // FX65
)

var opNames = [...]string{
	OpUnknown:            "Unknown",
	OpSys:                "Sys",
	OpClear:              "Clear",
	OpReturn:             "Return",
	OpJump:               "Jump",
	OpCall:               "Call",
	OpSkipEqConst:        "SkipEqConst",
	OpSkipNeqConst:       "SkipNeqConst",
	OpSkipEq:             "SkipEq",
	OpLoad:               "Load",
	OpAddConst:           "AddConst",
	OpLoadRegister:       "LoadRegister",
	OpOr:                 "Or",
	OpAnd:                "And",
	OpXor:                "Xor",
	OpAdd:                "Add",
	OpSub:                "Sub",
	OpShiftRight:         "ShiftRight",
	OpSubn:               "Subn",
	OpShiftLeft:          "ShiftLeft",
	OpSkipNeq:            "SkipNeq",
	OpLoadIndex:          "LoadIndex",
	OpJumpPlusV0:         "JumpPlusV0",
	OpRandom:             "Random",
	OpDraw:               "Draw",
	OpKeyPressSkip:       "KeyPressSkip",
	OpKeyNotPressSkip:    "KeyNotPressSkip",
	OpDelayTimerLoadFrom: "DelayTimerLoadFrom",
	OpKeyLoad:            "KeyLoad",
	OpDelayTimerLoadInto: "DelayTimerLoadInto",
	OpSoundLoad:          "SoundLoad",
	OpAddIndex:           "AddIndex",
	OpLocateSprite:       "LocateSprite",
	OpLoadBcd:            "LoadBcd",
	OpStoreRegisters:     "StoreRegisters",
	OpReadRegisters:      "ReadRegisters",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return opNames[OpUnknown]
}

// Instruction is a decoded instruction word. Only the operand fields used
// by Op are filled in, the rest stay zero.
type Instruction struct {
	Op   Op
	Word uint16

	X   uint8  // register index
	Y   uint8  // second register index
	N   uint8  // 4 bit count
	NN  uint8  // immediate byte
	NNN uint16 // 12 bit address
}

// Decode splits a big endian instruction word into its nibbles and
// selects the instruction. Words that match no instruction return an error
// wrapping ErrUnknownOpcode.
func Decode(word uint16) (Instruction, error) {
	family := word >> 12
	x := uint8(word>>8) & 0x0F
	y := uint8(word>>4) & 0x0F
	n := uint8(word) & 0x0F
	nn := uint8(word)
	nnn := word & 0x0FFF

	switch family {
	case 0x0:
		switch nnn {
		case 0x0E0:
			return Instruction{Op: OpClear, Word: word}, nil
		case 0x0EE:
			return Instruction{Op: OpReturn, Word: word}, nil
		}
		return Instruction{Op: OpSys, Word: word, NNN: nnn}, nil
	case 0x1:
		return Instruction{Op: OpJump, Word: word, NNN: nnn}, nil
	case 0x2:
		return Instruction{Op: OpCall, Word: word, NNN: nnn}, nil
	case 0x3:
		return Instruction{Op: OpSkipEqConst, Word: word, X: x, NN: nn}, nil
	case 0x4:
		return Instruction{Op: OpSkipNeqConst, Word: word, X: x, NN: nn}, nil
	case 0x5:
		if n == 0 {
			return Instruction{Op: OpSkipEq, Word: word, X: x, Y: y}, nil
		}
	case 0x6:
		return Instruction{Op: OpLoad, Word: word, X: x, NN: nn}, nil
	case 0x7:
		return Instruction{Op: OpAddConst, Word: word, X: x, NN: nn}, nil
	case 0x8:
		switch n {
		case 0x0:
			return Instruction{Op: OpLoadRegister, Word: word, X: x, Y: y}, nil
		case 0x1:
			return Instruction{Op: OpOr, Word: word, X: x, Y: y}, nil
		case 0x2:
			return Instruction{Op: OpAnd, Word: word, X: x, Y: y}, nil
		case 0x3:
			return Instruction{Op: OpXor, Word: word, X: x, Y: y}, nil
		case 0x4:
			return Instruction{Op: OpAdd, Word: word, X: x, Y: y}, nil
		case 0x5:
			return Instruction{Op: OpSub, Word: word, X: x, Y: y}, nil
		case 0x6:
			return Instruction{Op: OpShiftRight, Word: word, X: x}, nil
		case 0x7:
			return Instruction{Op: OpSubn, Word: word, X: x, Y: y}, nil
		case 0xE:
			return Instruction{Op: OpShiftLeft, Word: word, X: x}, nil
		}
	case 0x9:
		if n == 0 {
			return Instruction{Op: OpSkipNeq, Word: word, X: x, Y: y}, nil
		}
	case 0xA:
		return Instruction{Op: OpLoadIndex, Word: word, NNN: nnn}, nil
	case 0xB:
		return Instruction{Op: OpJumpPlusV0, Word: word, NNN: nnn}, nil
	case 0xC:
		return Instruction{Op: OpRandom, Word: word, X: x, NN: nn}, nil
	case 0xD:
		return Instruction{Op: OpDraw, Word: word, X: x, Y: y, N: n}, nil
	case 0xE:
		switch nn {
		case 0x9E:
			return Instruction{Op: OpKeyPressSkip, Word: word, X: x}, nil
		case 0xA1:
			return Instruction{Op: OpKeyNotPressSkip, Word: word, X: x}, nil
		}
	case 0xF:
		if op, ok := familyF[nn]; ok {
			return Instruction{Op: op, Word: word, X: x}, nil
		}
	}

	return Instruction{Word: word}, opCodeError(word)
}

// FX.. instructions differ only in their low byte.
var familyF = map[uint8]Op{
	0x07: OpDelayTimerLoadFrom,
	0x0A: OpKeyLoad,
	0x15: OpDelayTimerLoadInto,
	0x18: OpSoundLoad,
	0x1E: OpAddIndex,
	0x29: OpLocateSprite,
	0x33: OpLoadBcd,
	0x55: OpStoreRegisters,
	0x65: OpReadRegisters,
}
