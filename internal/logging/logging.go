// Package logging installs the process-wide zerolog logger.
//
// A terminal UI owns stdout and stderr, so logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures Setup.
type Options struct {
	// Level is a zerolog level name ("trace", "debug", "info", ...).
	// Empty means info.
	Level string
	// File receives the log. Empty discards everything.
	File string
	// Pretty writes human readable lines instead of JSON.
	Pretty bool
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup replaces log.Logger according to opts. The returned closer releases
// the log file and must be called on exit.
func Setup(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lvl, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = lvl
	}

	if opts.File == "" {
		log.Logger = zerolog.New(io.Discard).Level(zerolog.Disabled)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", opts.File, err)
	}

	var w io.Writer = file
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: file, NoColor: true}
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Debug().Str("level", level.String()).Msg("logger set up")
	return file, nil
}
