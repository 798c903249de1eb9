package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beanboi7/chyp8/emu/display"
	"github.com/retroenv/retrogolib/log"
)

const (
	MemorySize    = 4096
	ROMOffset     = 0x200
	MaxROMSize    = MemorySize - ROMOffset
	FontOffset    = 0x50
	FontGlyphSize = 5
	RegisterCount = 16

	// FrameRate is the logical rate, in Hz, at which timers count down and
	// interactive surfaces present frames.
	FrameRate = 60

	// DefaultSeed makes Random produce the same sequence on every run.
	DefaultSeed = 1

	flag = 0xF
)

var FontSet = [16 * FontGlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// EMU is a CHIP-8 machine. It owns all machine state and is not safe for
// concurrent use.
type EMU struct {
	opcode     Instruction //last decoded instruction
	memory     [MemorySize]uint8
	v          [RegisterCount]uint8
	I          uint16 //address register
	pc         uint16
	stack      []uint16
	delayTimer uint8 //counts down at 60Hz
	soundTimer uint8 //same as above
	cycles     uint64

	display *display.Buffer
	surface Surface
	rng     *rand.Rand

	logger    *log.Logger
	trace     bool
	lastTrace time.Time
}

// Option configures an EMU.
type Option func(*EMU)

// WithSeed reseeds the generator used by the random instruction.
func WithSeed(seed int64) Option {
	return func(emu *EMU) {
		emu.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(emu *EMU) {
		emu.logger = logger
	}
}

// WithTrace logs every executed instruction at debug level. It needs a
// logger to have any effect.
func WithTrace(trace bool) Option {
	return func(emu *EMU) {
		emu.trace = trace
	}
}

// NewEMU builds a machine with the font loaded, rom copied to ROMOffset
// and the program counter pointing at it.
func NewEMU(rom []byte, surface Surface, opts ...Option) (*EMU, error) {
	if surface == nil {
		return nil, errors.New("a surface is required")
	}

	emu := &EMU{
		pc:         ROMOffset,
		stack:      []uint16{},
		delayTimer: 0xFF,
		soundTimer: 0xFF,
		display:    display.New(),
		surface:    surface,
		rng:        rand.New(rand.NewSource(DefaultSeed)),
	}
	for _, opt := range opts {
		opt(emu)
	}

	emu.loadFont()
	if err := emu.LoadROM(rom); err != nil {
		return nil, err
	}
	return emu, nil
}

func (emu *EMU) loadFont() {
	copy(emu.memory[FontOffset:], FontSet[:])
}

// LoadROM copies rom verbatim into memory at ROMOffset.
func (emu *EMU) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	copy(emu.memory[ROMOffset:], rom)
	return nil
}

// Run executes cycles until the surface stops running or a cycle fails.
func (emu *EMU) Run() error {
	for emu.surface.IsRunning() {
		if err := emu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step runs exactly one cycle: fetch, decode, advance the program counter,
// execute, present the frame and count the timers down.
func (emu *EMU) Step() error {
	pc := emu.pc
	if int(pc)+1 >= MemorySize {
		return &Fault{PC: pc, Err: fmt.Errorf("%w: fetch at $%03X", ErrMemoryBounds, pc)}
	}

	word := uint16(emu.memory[pc])<<8 | uint16(emu.memory[pc+1])
	ins, err := Decode(word)
	if err != nil {
		return &Fault{PC: pc, Instruction: ins, Err: err}
	}
	emu.opcode = ins

	if emu.trace && emu.logger != nil {
		emu.traceInstruction(pc, ins)
	}

	emu.pc += 2
	if err := emu.execute(ins); err != nil {
		return &Fault{PC: pc, Instruction: ins, Err: err}
	}

	if err := emu.surface.Present(emu.display.Snapshot()); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}

	emu.delayTimerHandler()
	emu.soundTimerHandler()
	emu.cycles++
	return nil
}

func (emu *EMU) traceInstruction(pc uint16, ins Instruction) {
	now := time.Now()
	var since time.Duration
	if !emu.lastTrace.IsZero() {
		since = now.Sub(emu.lastTrace)
	}
	emu.lastTrace = now

	emu.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.Hex("word", ins.Word),
		log.String("instruction", ins.String()),
		log.String("since_last", since.String()))
}

// no tone is produced, the sound timer is only tracked
func (emu *EMU) soundTimerHandler() {
	if emu.soundTimer > 0 {
		emu.soundTimer--
	}
}

func (emu *EMU) delayTimerHandler() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
}

// State is a copy of the machine registers, for diagnostics.
type State struct {
	PC          uint16
	I           uint16
	V           [RegisterCount]uint8
	DelayTimer  uint8
	SoundTimer  uint8
	StackDepth  int
	Cycles      uint64
	Instruction Instruction
}

func (emu *EMU) State() State {
	return State{
		PC:          emu.pc,
		I:           emu.I,
		V:           emu.v,
		DelayTimer:  emu.delayTimer,
		SoundTimer:  emu.soundTimer,
		StackDepth:  len(emu.stack),
		Cycles:      emu.cycles,
		Instruction: emu.opcode,
	}
}

// Frame returns the current screen contents.
func (emu *EMU) Frame() display.Frame {
	return emu.display.Snapshot()
}
