// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/viper"
)

// Renderer names a surface the emulator can run on.
type Renderer string

const (
	Pixel    Renderer = "pixel"
	Terminal Renderer = "terminal"
	Headless Renderer = "headless"
)

// Keys used in the config file, the environment and as flag names.
const (
	KeyRenderer = "renderer"
	KeyRefresh  = "refresh"
	KeyScale    = "scale"
	KeySeed     = "seed"
	KeyTrace    = "trace"
	KeyCycles   = "cycles"
	KeyDebug    = "debug"
	KeyQuiet    = "quiet"
)

// EnvPrefix is prepended to every key to form its environment variable,
// CHYP8_RENDERER for example.
const EnvPrefix = "CHYP8"

var errInvalid = errors.New("invalid configuration")

// Options is the resolved configuration of a run.
type Options struct {
	Renderer Renderer
	Refresh  int
	Scale    int
	Seed     int64
	Trace    bool
	Cycles   int
	Debug    bool
	Quiet    bool
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRenderer, string(Pixel))
	v.SetDefault(KeyRefresh, 60)
	v.SetDefault(KeyScale, 8)
	v.SetDefault(KeySeed, 1)
	v.SetDefault(KeyTrace, false)
	v.SetDefault(KeyCycles, 0)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyQuiet, false)
}

// Load reads and validates the options from v.
func Load(v *viper.Viper) (Options, error) {
	opts := Options{
		Renderer: Renderer(v.GetString(KeyRenderer)),
		Refresh:  v.GetInt(KeyRefresh),
		Scale:    v.GetInt(KeyScale),
		Seed:     v.GetInt64(KeySeed),
		Trace:    v.GetBool(KeyTrace),
		Cycles:   v.GetInt(KeyCycles),
		Debug:    v.GetBool(KeyDebug),
		Quiet:    v.GetBool(KeyQuiet),
	}

	switch opts.Renderer {
	case Pixel, Terminal, Headless:
	default:
		return opts, fmt.Errorf("%w: unknown renderer %q", errInvalid, opts.Renderer)
	}
	if opts.Refresh <= 0 {
		return opts, fmt.Errorf("%w: refresh must be positive, got %d", errInvalid, opts.Refresh)
	}
	if opts.Scale <= 0 {
		return opts, fmt.Errorf("%w: scale must be positive, got %d", errInvalid, opts.Scale)
	}
	if opts.Cycles < 0 {
		return opts, fmt.Errorf("%w: cycles can not be negative, got %d", errInvalid, opts.Cycles)
	}
	return opts, nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
