package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"video_syncer/internal/config"
	"video_syncer/internal/report"
	"video_syncer/internal/runner"
	"video_syncer/internal/service"
	"video_syncer/internal/storage"
)

const jobAll = "all"

// dependencies are constructed once per process and shared by every job.
type dependencies struct {
	docs      storage.DocumentStore
	feed      service.FeedSource
	metadata  service.MetadataClient
	publisher service.Publisher
	logger    *slog.Logger
	out       io.Writer
}

// buildJobs returns every ingest job followed by every pointer job, or the
// single job called name.
func buildJobs(cfg *config.Config, name string, deps dependencies) ([]runner.Job, error) {
	var jobs []runner.Job
	for _, in := range cfg.Ingest {
		if name == jobAll || name == in.Name {
			jobs = append(jobs, ingestJob(in, cfg, deps))
		}
	}
	for _, p := range cfg.Pointers {
		if name == jobAll || name == p.Name {
			jobs = append(jobs, pointerJob(p, deps))
		}
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("unknown job %q", name)
	}
	return jobs, nil
}

func ingestJob(in config.IngestConfig, cfg *config.Config, deps dependencies) runner.Job {
	svc := service.NewIngestService(
		deps.feed,
		deps.metadata,
		storage.NewKnownIDStore(deps.docs, in.Collection, in.IndexDocument, in.CountField),
		storage.NewVideoStore(deps.docs, in.Collection),
		deps.publisher,
		deps.logger,
		in,
		cfg.WriteDelay,
	)

	return runner.Job{
		Name: in.Name,
		Run: func(ctx context.Context) error {
			stats, err := svc.Run(ctx)
			if stats != nil {
				fmt.Fprintln(deps.out, report.Ingest(stats))
			}
			if err != nil {
				fmt.Fprintln(deps.out, report.Failure(in.Name, err))
			}
			return err
		},
	}
}

func pointerJob(p config.PointerConfig, deps dependencies) runner.Job {
	svc := service.NewPointerService(
		deps.feed,
		deps.metadata,
		storage.NewPointerStore(deps.docs, p.Collection, p.MatchField, p.ChannelID),
		deps.publisher,
		deps.logger,
		p,
	)

	return runner.Job{
		Name: p.Name,
		Run: func(ctx context.Context) error {
			result, err := svc.Run(ctx)
			if err != nil {
				fmt.Fprintln(deps.out, report.Failure(p.Name, err))
				return err
			}
			fmt.Fprintln(deps.out, report.Pointer(result))
			return nil
		},
	}
}
