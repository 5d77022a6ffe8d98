package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/vk/lineextract/internal/app"
	"github.com/vk/lineextract/internal/extract"
)

// Exit codes used by ExitError.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: err.Error(), Err: err}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("lineextract", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
lineextract - first-column and grouped extraction from tab-delimited files.

Usage:
  lineextract [options] INPUT SPLIT_COUNT
  lineextract -mode group [options] INPUT
  lineextract -job PATH [options]

Arguments:
  INPUT
    Tab-delimited file to read. Use - for standard input.
  SPLIT_COUNT
    Number of thousands of rows to print in split mode.

Options must come before INPUT.

Options:
`)
		flagSet.PrintDefaults()
	}

	modeFlag := flagSet.String("mode", string(extract.ModeSplit), "Extraction mode. Options: 'split' or 'group'.")
	flushFlag := flagSet.Bool("flush-final", false, "In group mode, also print the last group.")
	outputFlag := flagSet.String("output", "", "Write emitted lines to this file instead of standard output.")
	oFlag := flagSet.String("o", "", "Output file (shorthand).")
	appendFlag := flagSet.Bool("append", false, "Append to the output file instead of truncating it.")
	jobFlag := flagSet.String("job", "", "Path to an HCL job file or a directory of job files.")
	envFileFlag := flagSet.String("env-file", "", "Load variables from this .env file before reading job files.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	mode, err := extract.ParseMode(*modeFlag)
	if err != nil {
		return nil, false, usageError(err)
	}

	cfg := app.Config{
		Mode:       mode,
		FlushFinal: *flushFlag,
		OutputPath: *outputFlag,
		Append:     *appendFlag,
		JobPath:    *jobFlag,
		EnvFile:    *envFileFlag,
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = *oFlag
	}

	if cfg.JobPath != "" {
		if flagSet.NArg() > 0 {
			return nil, false, &ExitError{Code: ExitUsage, Message: "positional arguments cannot be combined with -job"}
		}
	} else {
		if flagSet.NArg() < 1 {
			flagSet.Usage()
			return nil, false, &ExitError{Code: ExitUsage, Message: "missing required argument: INPUT"}
		}
		if arg, ok := trailingFlag(flagSet.Args()); ok {
			return nil, false, &ExitError{
				Code:    ExitUsage,
				Message: fmt.Sprintf("flag %q after positional arguments: options must come before INPUT", arg),
			}
		}
		cfg.InputPath = flagSet.Arg(0)

		if mode == extract.ModeSplit {
			if flagSet.NArg() < 2 {
				flagSet.Usage()
				return nil, false, &ExitError{Code: ExitUsage, Message: "missing required argument: SPLIT_COUNT"}
			}
			n, err := extract.ParseSplitCount(flagSet.Arg(1))
			if err != nil {
				return nil, false, usageError(err)
			}
			cfg.SplitCount = n
		}
	}
	slog.Debug("Input determined.", "input", cfg.InputPath, "job", cfg.JobPath, "mode", mode)

	cfg.LogFormat = *logFormatFlag
	cfg.LogLevel = *logLevelFlag

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError(err)
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// trailingFlag returns the first argument after INPUT (args[0]) that looks
// like an option. flag stops parsing at INPUT, so such options are never
// applied. A lone "-" and negative numbers are treated as values.
func trailingFlag(args []string) (string, bool) {
	for _, arg := range args[1:] {
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		if _, err := strconv.Atoi(arg); err == nil {
			continue
		}
		return arg, true
	}
	return "", false
}
