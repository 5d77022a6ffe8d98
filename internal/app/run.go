package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/lineextract/internal/ctxlog"
	"github.com/vk/lineextract/internal/extract"
	"github.com/vk/lineextract/internal/jobfile"
	"github.com/vk/lineextract/internal/output"
	"github.com/vk/lineextract/internal/tsv"
)

// Run executes every configured job in order and stops at the first failure.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.EnvFile != "" {
		if err := jobfile.LoadEnvFile(ctx, a.config.EnvFile); err != nil {
			return err
		}
	}

	jobs, err := a.jobs(ctx)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if _, err := a.runJob(ctx, job); err != nil {
			return fmt.Errorf("job %q failed: %w", job.Name, err)
		}
	}

	a.logger.Debug("App.Run method finished.", "jobs", len(jobs))
	return nil
}

func (a *App) jobs(ctx context.Context) ([]jobfile.Job, error) {
	if a.config.JobPath == "" {
		return []jobfile.Job{a.config.commandLineJob()}, nil
	}
	jobs, err := a.loader.Load(ctx, a.config.JobPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	a.logger.Info("Jobs loaded.", "path", a.config.JobPath, "count", len(jobs))
	return jobs, nil
}

// runJob performs one extraction. Lines already emitted are flushed even
// when the job fails part way.
func (a *App) runJob(ctx context.Context, job jobfile.Job) (stats extract.Stats, err error) {
	logger := ctxlog.FromContext(ctx).With("job", job.Name)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Job starting.", "input", job.Input, "mode", job.Mode)

	in, err := a.openInput(job.Input)
	if err != nil {
		return stats, err
	}
	defer in.Close()

	sink, err := a.openSink(job)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing output: %w", extract.ErrIO, cerr)
		}
	}()

	src := tsv.NewReader(in)
	switch job.Mode {
	case extract.ModeSplit:
		stats, err = extract.Split(ctx, src, sink, job.SplitCount)
	case extract.ModeGroup:
		stats, err = extract.Group(ctx, src, sink, extract.GroupOptions{FlushFinal: job.FlushFinal})
	default:
		err = fmt.Errorf("%w: unsupported mode %q", extract.ErrFormat, job.Mode)
	}
	if err != nil {
		return stats, err
	}

	logger.Info("Job finished.",
		"rows_read", stats.RowsRead,
		"lines_emitted", stats.LinesEmitted,
		"groups_dropped", stats.GroupsDropped,
	)
	return stats, nil
}

func (a *App) openInput(path string) (io.ReadCloser, error) {
	if path == jobfile.StdinPath {
		return io.NopCloser(a.in), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open input: %w", extract.ErrIO, err)
	}
	return f, nil
}

func (a *App) openSink(job jobfile.Job) (*output.Sink, error) {
	if job.Output == "" {
		return output.NewSink(a.outW), nil
	}
	sink, err := output.Open(job.Output, output.ModeFor(job.Append))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", extract.ErrIO, err)
	}
	return sink, nil
}
