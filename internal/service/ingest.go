package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"video_syncer/internal/config"
	"video_syncer/internal/domain"
)

// indexSaveTimeout bounds the ID index write, which runs even when the run
// context is already done.
const indexSaveTimeout = 30 * time.Second

type IngestService struct {
	feed      FeedSource
	metadata  MetadataClient
	knownIDs  KnownIDStore
	videos    VideoStore
	publisher Publisher
	keywords  *KeywordFilter
	durations DurationPolicy
	limiter   *rate.Limiter
	logger    *slog.Logger
	config    config.IngestConfig
}

func NewIngestService(
	feed FeedSource,
	metadata MetadataClient,
	knownIDs KnownIDStore,
	videos VideoStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.IngestConfig,
	writeDelay time.Duration,
) *IngestService {
	limit := rate.Inf
	if writeDelay > 0 {
		limit = rate.Every(writeDelay)
	}

	return &IngestService{
		feed:      feed,
		metadata:  metadata,
		knownIDs:  knownIDs,
		videos:    videos,
		publisher: publisher,
		keywords:  NewKeywordFilter(cfg.ExcludeKeywords),
		durations: NewDurationPolicy(cfg.Duration),
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger.With("job", cfg.Name, "collection", cfg.Collection),
		config:    cfg,
	}
}

// Run executes one ingestion pass. A failure to read the ID index aborts
// the run before anything is written. A failure to write it back is
// returned together with the stats of the pass.
func (s *IngestService) Run(ctx context.Context) (*domain.IngestStats, error) {
	startTime := time.Now()
	s.logger.Info("starting ingestion",
		"channels", len(s.config.Channels),
		"keyword_filter", s.keywords.Enabled(),
		"duration_rule", s.durations.String(),
	)

	known, err := s.knownIDs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load known ids: %w", err)
	}
	s.logger.Info("loaded known ids", "count", known.Len())

	stats := &domain.IngestStats{Pipeline: s.config.Name}

	entries := s.collect(ctx, stats)
	candidates := s.dedupe(entries, known, stats)
	s.logger.Info("new candidates", "count", len(candidates))

	var saveErr error
	if len(candidates) > 0 {
		candidates = s.filterLive(ctx, candidates, stats)
		s.enrich(ctx, candidates)
		accepted := s.filterContent(candidates, stats)

		if s.persist(ctx, accepted, known, stats) > 0 {
			if err := s.saveKnownIDs(ctx, known); err != nil {
				s.logger.Error("failed to save known ids", "error", err)
				saveErr = fmt.Errorf("save known ids: %w", err)
			} else {
				stats.IndexUpdated = true
			}
		}
	}

	stats.TotalKnown = known.Len()
	stats.Duration = time.Since(startTime)

	s.logger.Info("ingestion completed",
		"fetched", stats.Fetched,
		"skipped_existing", stats.SkippedExisting,
		"skipped_duplicate", stats.SkippedDuplicate,
		"skipped_live", stats.SkippedLive,
		"skipped_keywords", stats.SkippedKeywords,
		"skipped_duration", stats.SkippedDuration,
		"inserted", stats.Inserted,
		"insert_errors", stats.InsertErrors,
		"total_known", stats.TotalKnown,
		"duration", stats.Duration,
	)

	return stats, saveErr
}

// collect fetches every channel in order. A failing channel contributes
// nothing and does not stop the others.
func (s *IngestService) collect(ctx context.Context, stats *domain.IngestStats) []domain.RawEntry {
	var entries []domain.RawEntry
	for _, channelID := range s.config.Channels {
		got, err := s.feed.FetchChannel(ctx, channelID)
		if err != nil {
			s.logger.Warn("failed to fetch channel", "channel_id", channelID, "error", err)
			continue
		}
		s.logger.Debug("fetched channel", "channel_id", channelID, "entries", len(got))
		entries = append(entries, got...)
	}
	stats.Fetched = len(entries)
	return entries
}

func (s *IngestService) dedupe(entries []domain.RawEntry, known domain.KnownIDs, stats *domain.IngestStats) []domain.Candidate {
	seen := make(map[string]struct{}, len(entries))
	candidates := make([]domain.Candidate, 0, len(entries))

	for _, e := range entries {
		c, err := domain.NewCandidate(e)
		if err != nil {
			s.logger.Debug("dropping entry", "error", err)
			continue
		}
		if known.Has(c.VideoID) {
			stats.SkippedExisting++
			continue
		}
		if _, ok := seen[c.VideoID]; ok {
			stats.SkippedDuplicate++
			continue
		}
		seen[c.VideoID] = struct{}{}
		candidates = append(candidates, c)
	}
	return candidates
}

func (s *IngestService) filterLive(ctx context.Context, candidates []domain.Candidate, stats *domain.IngestStats) []domain.Candidate {
	live := s.metadata.LiveOrUpcoming(ctx, videoIDs(candidates))

	kept := candidates[:0]
	for _, c := range candidates {
		if status, ok := live[c.VideoID]; ok && status.Excluded() {
			s.logger.Info("skipping live video", "video_id", c.VideoID, "status", status)
			stats.SkippedLive++
			continue
		}
		c.LiveStatus = domain.LiveStatusNone
		kept = append(kept, c)
	}
	return kept
}

func (s *IngestService) enrich(ctx context.Context, candidates []domain.Candidate) {
	if len(candidates) == 0 {
		return
	}

	ids := videoIDs(candidates)
	durations := s.metadata.Durations(ctx, ids)
	thumbnails := s.metadata.Thumbnails(ctx, ids)

	for i := range candidates {
		c := &candidates[i]
		if d, ok := durations[c.VideoID]; ok {
			c.Duration = d
			c.HasDuration = true
		}
		if thumb, ok := thumbnails[c.VideoID]; ok {
			c.ThumbnailURL = thumb
		}
	}
}

func (s *IngestService) filterContent(candidates []domain.Candidate, stats *domain.IngestStats) []domain.Candidate {
	accepted := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if kw, ok := s.keywords.Match(c.Title); ok {
			s.logger.Info("skipping by keyword", "video_id", c.VideoID, "keyword", kw)
			stats.SkippedKeywords++
			continue
		}
		if !s.durations.Allows(c.Duration, c.HasDuration) {
			s.logger.Debug("skipping by duration",
				"video_id", c.VideoID,
				"duration", c.Duration,
				"known", c.HasDuration,
			)
			stats.SkippedDuration++
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}

// persist inserts accepted candidates one by one and adds each inserted ID
// to known. It returns the number of IDs added.
func (s *IngestService) persist(ctx context.Context, accepted []domain.Candidate, known domain.KnownIDs, stats *domain.IngestStats) int {
	added := 0
	for _, c := range accepted {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn("stopping inserts", "error", err)
			break
		}

		record := domain.NewVideoRecord(c)
		id, err := s.videos.Insert(ctx, record)
		if err != nil {
			s.logger.Warn("failed to insert video", "video_id", c.VideoID, "error", err)
			stats.InsertErrors++
			continue
		}

		stats.Inserted++
		if known.Add(c.VideoID) {
			added++
		}
		s.logger.Info("inserted video", "video_id", c.VideoID, "document_id", id)

		s.publish(ctx, stats, domain.Event{
			Type:       domain.EventVideoIngested,
			Job:        s.config.Name,
			Collection: s.videos.Collection(),
			DocumentID: id,
			VideoID:    c.VideoID,
			Fields:     record.Fields(),
			Timestamp:  time.Now().UTC(),
		})
	}
	return added
}

// saveKnownIDs detaches from ctx cancellation: records inserted before a
// cancel must still reach the index or the next run inserts them again.
func (s *IngestService) saveKnownIDs(ctx context.Context, known domain.KnownIDs) error {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexSaveTimeout)
	defer cancel()

	return s.knownIDs.Save(saveCtx, known)
}

func (s *IngestService) publish(ctx context.Context, stats *domain.IngestStats, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "video_id", event.VideoID, "error", err)
		stats.PublishErrors++
		return
	}
	stats.Published++
}

func videoIDs(candidates []domain.Candidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.VideoID
	}
	return ids
}
