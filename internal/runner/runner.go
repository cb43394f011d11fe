// Package runner executes extraction jobs: check the input, extract, write the output, confirm.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hyperjump/doctext/internal/extract"
	"github.com/hyperjump/doctext/internal/models"
	"go.uber.org/zap"
)

// outputPerm is the mode for newly created output files.
const outputPerm = 0644

// Runner runs extraction jobs in order, one at a time.
type Runner struct {
	extractor *extract.Extractor
	stdout    io.Writer
	logger    *zap.Logger // optional; when set, logs debug events
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets a logger for debug output (job started, input skipped, output written).
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithStdout sets where confirmation lines are printed. Defaults to os.Stdout.
func WithStdout(w io.Writer) RunnerOption {
	return func(r *Runner) { r.stdout = w }
}

// NewRunner creates a runner. extractor may be nil; a default Extractor is used then.
func NewRunner(extractor *extract.Extractor, opts ...RunnerOption) *Runner {
	if extractor == nil {
		extractor = extract.NewExtractor()
	}
	r := &Runner{
		extractor: extractor,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes jobs in order and returns how many were processed. The first failing
// job stops the run; jobs whose input is missing are skipped without output.
func (r *Runner) Run(ctx context.Context, jobs []models.Job) (n int, err error) {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		done, err := r.RunJob(ctx, job)
		if err != nil {
			return n, fmt.Errorf("job %s: %w", job.Input, err)
		}
		if done {
			n++
		}
	}
	return n, nil
}

// RunJob extracts one job. It returns false without error when the input does not exist,
// in which case the output file is left untouched and nothing is printed.
func (r *Runner) RunJob(ctx context.Context, job models.Job) (bool, error) {
	r.debug("runner job started", zap.String("input", job.Input), zap.String("kind", string(job.ResolvedKind())))
	if _, err := os.Stat(job.Input); err != nil {
		r.debug("runner input not found, skipping", zap.String("input", job.Input), zap.Error(err))
		return false, nil
	}
	text, err := r.extractor.ExtractKind(job.Input, job.ResolvedKind())
	if err != nil {
		return false, fmt.Errorf("extract: %w", err)
	}
	if err := writeOutput(job.Output, text); err != nil {
		return false, err
	}
	r.debug("runner output written", zap.String("output", job.Output), zap.Int("bytes", len(text)))
	if _, err := fmt.Fprintln(r.stdout, confirmation(job)); err != nil {
		return true, fmt.Errorf("print confirmation: %w", err)
	}
	return true, nil
}

// writeOutput creates or truncates path and writes text as UTF-8.
func writeOutput(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputPerm)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()
	if _, err := io.WriteString(f, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// confirmation returns the job's message, or a generic one naming the input.
func confirmation(job models.Job) string {
	if job.Message != "" {
		return job.Message
	}
	return fmt.Sprintf("Extracted %s.", filepath.Base(job.Input))
}

func (r *Runner) debug(msg string, fields ...zap.Field) {
	if r.logger != nil {
		r.logger.Debug(msg, fields...)
	}
}
