package jobfile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/lineextract/internal/ctxlog"
	"github.com/vk/lineextract/internal/extract"
	"github.com/vk/lineextract/internal/fsutil"
)

// ErrNoJobs is returned when the given paths declare no job at all.
var ErrNoJobs = errors.New("no job blocks found")

// StdinPath is the input value that reads standard input.
const StdinPath = "-"

// Loader reads job files.
type Loader struct{}

// NewLoader creates a new HCL job loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every job file found under paths and returns the jobs in the
// order they are declared. Directories are searched recursively for .hcl
// files; explicit file paths are read whatever their extension.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]Job, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Job loader started.", "path_count", len(paths))

	var files []string
	for _, p := range paths {
		found, err := fsutil.FindFilesByExtension(p, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", extract.ErrIO, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered job files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext()
	seen := make(map[string]string)

	var jobs []Job
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: failed to parse job file %s: %w", extract.ErrFormat, file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: failed to decode job file %s: %w", extract.ErrFormat, file, diags)
		}

		for _, block := range root.Jobs {
			if prev, dup := seen[block.Name]; dup {
				return nil, fmt.Errorf("%w: job %q declared in both %s and %s", extract.ErrFormat, block.Name, prev, file)
			}
			seen[block.Name] = file

			job, err := translateJob(block, file)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: %w in %s", extract.ErrFormat, ErrNoJobs, strings.Join(paths, ", "))
	}

	logger.Debug("Job loading complete.", "jobs", len(jobs))
	return jobs, nil
}

// translateJob validates a decoded block and resolves its paths.
func translateJob(b *jobBlock, file string) (Job, error) {
	mode, err := extract.ParseMode(b.Mode)
	if err != nil {
		return Job{}, fmt.Errorf("job %q in %s: %w", b.Name, file, err)
	}
	if strings.TrimSpace(b.Input) == "" {
		return Job{}, fmt.Errorf("%w: job %q in %s: input must not be empty", extract.ErrFormat, b.Name, file)
	}

	job := Job{
		Name:       b.Name,
		Input:      resolve(file, b.Input),
		Mode:       mode,
		Append:     b.Append,
		FlushFinal: b.FlushFinal,
		Source:     file,
	}
	if b.Output != "" {
		job.Output = resolve(file, b.Output)
	}

	if mode == extract.ModeSplit {
		if b.SplitCount == nil {
			return Job{}, fmt.Errorf("%w: job %q in %s: split_count is required in split mode", extract.ErrFormat, b.Name, file)
		}
		if *b.SplitCount < 0 {
			return Job{}, fmt.Errorf("%w: job %q in %s: split_count %d is negative", extract.ErrFormat, b.Name, file, *b.SplitCount)
		}
		job.SplitCount = *b.SplitCount
	}
	return job, nil
}

func resolve(file, path string) string {
	if path == StdinPath || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(file), path)
}
