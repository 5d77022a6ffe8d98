package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/lineextract/internal/app"
	"github.com/vk/lineextract/internal/cli"
	"github.com/vk/lineextract/internal/extract"
	"github.com/vk/lineextract/internal/jobfile"
)

// main is the entrypoint for the lineextract application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	// The real main function handles errors and exit codes.
	os.Exit(report(os.Stderr, err))
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL job loader to pass to the app.
	loader := jobfile.NewLoader()
	lineApp, err := app.NewApp(in, outW, errW, appConfig, loader)
	if err != nil {
		return err
	}

	return lineApp.Run(ctx)
}

// report prints the diagnostic for err, if any, and returns the exit code.
func report(errW io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errW, exitErr.Message)
		if exitErr.Err != nil {
			fmt.Fprintf(errW, "Unexpected error: %s\n", extract.Kind(exitErr.Err))
		}
		return exitErr.Code
	}

	fmt.Fprintf(errW, "Unexpected error: %s\n", extract.Kind(err))
	fmt.Fprintln(errW, err)
	return cli.ExitRuntime
}
