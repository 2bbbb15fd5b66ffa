// Package logger provides the portal's singleton structured logger,
// backed by zerolog.
//
// Call Setup once during startup, then grab the root logger with L or a
// component-scoped child with For.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at setup time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Unrecognised or empty values fall back to "info".
	Level string
	// Env selects the output format. "development" gets a coloured
	// console writer; anything else emits JSON.
	Env string
	// Output is the writer logs are sent to. Defaults to os.Stdout.
	Output io.Writer
}

var (
	root  zerolog.Logger
	once  sync.Once
	ready bool
)

// Setup initialises the singleton. Only the first call has any effect.
func Setup(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if strings.EqualFold(opts.Env, "development") {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}

		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		root = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "civic-portal").
			Logger()

		ready = true
	})
	return root
}

// L returns the root logger. Panics if Setup has not run yet.
func L() zerolog.Logger {
	if !ready {
		panic("logger: L() called before Setup()")
	}
	return root
}

// For returns a child logger tagged with the given component name,
// e.g. For("backend") or For("audit").
func For(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}

// Reset tears down the singleton so the next Setup rebuilds it.
// Intended for use in tests only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}
