package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Job is one named unit of work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes jobs sequentially, each under its own timeout.
type Runner struct {
	jobs    []Job
	timeout time.Duration
	logger  *slog.Logger
}

func New(jobs []Job, timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		jobs:    jobs,
		timeout: timeout,
		logger:  logger,
	}
}

// Run keeps going after a failed job and returns all failures joined.
// It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("runner started", "jobs", len(r.jobs), "timeout", r.timeout)

	var errs []error
	for _, job := range r.jobs {
		if err := ctx.Err(); err != nil {
			r.logger.Info("runner stopped", "next_job", job.Name)
			errs = append(errs, err)
			break
		}
		if err := r.runJob(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}

	r.logger.Info("runner finished", "jobs", len(r.jobs), "failed", len(errs))
	return errors.Join(errs...)
}

func (r *Runner) runJob(ctx context.Context, job Job) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		r.logger.Error("job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return err
	}

	r.logger.Info("job finished", "job", job.Name, "duration", time.Since(start))
	return nil
}
