package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/lineextract/internal/jobfile"
)

// JobLoader reads job definitions from files or directories.
type JobLoader interface {
	Load(ctx context.Context, paths ...string) ([]jobfile.Job, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	in     io.Reader
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader JobLoader
}

// NewApp is the constructor for the main application. Emitted lines go to
// outW unless a job names an output file; logs go to logW; an input of "-"
// reads from in. It fails when the log settings are not recognised.
func NewApp(in io.Reader, outW, logW io.Writer, config *Config, loader JobLoader) (*App, error) {
	logger, err := newLogger(config.LogLevel, config.LogFormat, logW)
	if err != nil {
		return nil, err
	}
	logger.Debug("Logger configured successfully.")

	return &App{
		in:     in,
		outW:   outW,
		logger: logger,
		config: config,
		loader: loader,
	}, nil
}
