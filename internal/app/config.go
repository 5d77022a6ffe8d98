package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/lineextract/internal/extract"
	"github.com/vk/lineextract/internal/jobfile"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Single run from the command line.
	InputPath  string
	Mode       extract.Mode
	SplitCount int
	FlushFinal bool
	OutputPath string
	Append     bool

	// Job files replace the single run when set.
	JobPath string
	EnvFile string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg, fills in defaults and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.JobPath == "" && cfg.InputPath == "" {
		return nil, errors.New("an input file or a job file is required")
	}

	mode, err := extract.ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode

	if cfg.SplitCount < 0 {
		return nil, fmt.Errorf("%w: split count %d is negative", extract.ErrFormat, cfg.SplitCount)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = logFormatText
	}
	if cfg.LogFormat, err = parseLogFormat(cfg.LogFormat); err != nil {
		return nil, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return &cfg, nil
}

// cliJobName names the job built from command-line arguments.
const cliJobName = "cli"

// commandLineJob is the single job described by the command-line fields.
func (c *Config) commandLineJob() jobfile.Job {
	return jobfile.Job{
		Name:       cliJobName,
		Input:      c.InputPath,
		Mode:       c.Mode,
		SplitCount: c.SplitCount,
		Output:     c.OutputPath,
		Append:     c.Append,
		FlushFinal: c.FlushFinal,
	}
}
