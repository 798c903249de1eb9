package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/headless"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/term"
	"github.com/beanboi7/chyp8/internal/config"
	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:   "start path/ROM",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  Start,
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.StringP(config.KeyRenderer, "R", string(config.Pixel), "surface to run on: pixel, terminal or headless")
	flags.IntP(config.KeyRefresh, "r", 60, "sets the refresh rate of the display in Hz")
	flags.IntP(config.KeyScale, "s", screen.DefaultScale, "size of one CHIP-8 pixel in the window")
	flags.Int64(config.KeySeed, cpu.DefaultSeed, "seed of the random number generator")
	flags.Bool(config.KeyTrace, false, "log every executed instruction, needs --debug")
	flags.Int(config.KeyCycles, 0, "stop the headless renderer after this many cycles, 0 runs forever")
	bindFlags(flags, config.KeyRenderer, config.KeyRefresh, config.KeyScale, config.KeySeed, config.KeyTrace, config.KeyCycles)
}

// chyp8 start 'path/to/ROM' -r 69
func Start(cmd *cobra.Command, args []string) error {
	opts, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	rom, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading rom %q: %w", args[0], err)
	}
	logger.Debug("Loaded ROM",
		log.String("path", args[0]),
		log.Int("size", len(rom)),
		log.String("renderer", string(opts.Renderer)))

	emuOpts := []cpu.Option{
		cpu.WithSeed(opts.Seed),
		cpu.WithLogger(logger),
		cpu.WithTrace(opts.Trace),
	}

	switch opts.Renderer {
	case config.Headless:
		return runHeadless(cmd.OutOrStdout(), logger, rom, opts, emuOpts)
	case config.Terminal:
		return runTerminal(logger, rom, opts, emuOpts)
	default:
		return runWindow(logger, rom, opts, emuOpts)
	}
}

// runHeadless prints the last frame once the cycle limit is reached.
func runHeadless(out io.Writer, logger *log.Logger, rom []byte, opts config.Options, emuOpts []cpu.Option) error {
	surface := headless.New()
	surface.MaxCycles = opts.Cycles

	emu, err := cpu.NewEMU(rom, surface, emuOpts...)
	if err != nil {
		return fmt.Errorf("starting the emulator: %w", err)
	}
	runErr := run(emu, logger)

	last := surface.Last()
	if _, err := fmt.Fprint(out, last.String()); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func runTerminal(logger *log.Logger, rom []byte, opts config.Options, emuOpts []cpu.Option) error {
	ctx := app.Context()

	surface, err := term.Open(ctx,
		term.WithRefresh(opts.Refresh),
		term.WithLogger(logger))
	if err != nil {
		return err
	}

	emu, err := cpu.NewEMU(rom, surface, emuOpts...)
	if err != nil {
		return errors.Join(fmt.Errorf("starting the emulator: %w", err), surface.Close())
	}
	runErr := run(emu, logger)
	return errors.Join(runErr, surface.Close())
}

// runWindow takes over the main thread until the window is closed.
func runWindow(logger *log.Logger, rom []byte, opts config.Options, emuOpts []cpu.Option) error {
	var runErr error

	pixelgl.Run(func() {
		win, err := screen.Open(opts.Scale, opts.Refresh)
		if err != nil {
			runErr = err
			return
		}
		defer win.Close()
		logger.Debug("Window opened", log.Int("scale", opts.Scale))

		emu, err := cpu.NewEMU(rom, win, emuOpts...)
		if err != nil {
			runErr = fmt.Errorf("starting the emulator: %w", err)
			return
		}
		runErr = run(emu, logger)
	})
	return runErr
}

func run(emu *cpu.EMU, logger *log.Logger) error {
	err := emu.Run()
	state := emu.State()

	if err == nil {
		logger.Debug("Emulation stopped", log.Int("cycles", int(state.Cycles)))
		return nil
	}

	logger.Error("Emulation failed",
		log.Err(err),
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.Int("stack_depth", state.StackDepth),
		log.Int("cycles", int(state.Cycles)))
	return err
}
