package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"video_syncer/internal/config"
	"video_syncer/internal/domain"
)

// PointerService keeps one pointer document aimed at the newest matching
// video of a channel.
type PointerService struct {
	feed      FeedSource
	metadata  MetadataClient
	pointers  PointerStore
	publisher Publisher
	logger    *slog.Logger
	config    config.PointerConfig
}

func NewPointerService(
	feed FeedSource,
	metadata MetadataClient,
	pointers PointerStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.PointerConfig,
) *PointerService {
	return &PointerService{
		feed:      feed,
		metadata:  metadata,
		pointers:  pointers,
		publisher: publisher,
		logger:    logger.With("job", cfg.Name, "channel_id", cfg.ChannelID),
		config:    cfg,
	}
}

// Run selects a video and overwrites the pointer only when its URL changed.
// No match is not an error; a missing pointer document is.
func (s *PointerService) Run(ctx context.Context) (*domain.PointerResult, error) {
	startTime := time.Now()
	result := &domain.PointerResult{Name: s.config.Name}
	defer func() { result.Duration = time.Since(startTime) }()

	matches := s.matches(ctx)
	result.Matches = len(matches)
	if len(matches) == 0 {
		s.logger.Info("no matching video found", "title_contains", s.config.TitleContains)
		result.Outcome = domain.PointerNotFound
		return result, nil
	}

	chosen, snippet := s.selectVideo(ctx, matches)
	result.VideoID = chosen.VideoID
	result.Live = snippet != nil && snippet.LiveStatus == domain.LiveStatusLive
	result.Record = domain.NewPointerRecord(chosen.VideoID, s.title(chosen, snippet), s.thumbnail(ctx, chosen, snippet))

	pointer, err := s.pointers.Find(ctx)
	if err != nil {
		return result, fmt.Errorf("find pointer: %w", err)
	}

	if pointer.URL == result.Record.URL {
		s.logger.Info("pointer already up to date", "video_id", chosen.VideoID)
		result.Outcome = domain.PointerUnchanged
		return result, nil
	}

	if err := s.pointers.Update(ctx, pointer.ID, result.Record); err != nil {
		return result, fmt.Errorf("update pointer: %w", err)
	}
	result.Outcome = domain.PointerUpdated
	s.logger.Info("pointer updated",
		"video_id", chosen.VideoID,
		"document_id", pointer.ID,
		"previous_url", pointer.URL,
		"live", result.Live,
	)

	if s.publisher != nil {
		event := domain.Event{
			Type:       domain.EventPointerUpdated,
			Job:        s.config.Name,
			Collection: s.pointers.Collection(),
			DocumentID: pointer.ID,
			VideoID:    chosen.VideoID,
			Fields:     result.Record.Fields(),
			Timestamp:  time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish event", "error", err)
		}
	}

	return result, nil
}

// matches returns feed entries whose title contains the configured text,
// newest first. A feed failure yields no matches.
func (s *PointerService) matches(ctx context.Context) []domain.Candidate {
	entries, err := s.feed.FetchChannel(ctx, s.config.ChannelID)
	if err != nil {
		s.logger.Warn("failed to fetch channel", "error", err)
		return nil
	}

	var matches []domain.Candidate
	for _, e := range entries {
		if !strings.Contains(e.Title, s.config.TitleContains) {
			continue
		}
		c, err := domain.NewCandidate(e)
		if err != nil {
			s.logger.Debug("dropping entry", "error", err)
			continue
		}
		matches = append(matches, c)
	}

	slices.SortStableFunc(matches, func(a, b domain.Candidate) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return matches
}

// selectVideo applies the selection rule to matches sorted newest first.
// The returned snippet is nil when none was looked up or found.
func (s *PointerService) selectVideo(ctx context.Context, matches []domain.Candidate) (domain.Candidate, *domain.Snippet) {
	if s.config.Selection != config.SelectionLive {
		return matches[0], nil
	}

	top := matches[:min(max(s.config.CandidateLimit, 1), len(matches))]
	snippets := s.metadata.Snippets(ctx, videoIDs(top))

	for _, c := range top {
		if sn, ok := snippets[c.VideoID]; ok && sn.LiveStatus == domain.LiveStatusLive {
			return c, &sn
		}
	}

	s.logger.Debug("no live broadcast among candidates", "candidates", len(top))
	if sn, ok := snippets[top[0].VideoID]; ok {
		return top[0], &sn
	}
	return top[0], nil
}

func (s *PointerService) title(c domain.Candidate, snippet *domain.Snippet) string {
	if snippet != nil {
		return cmp.Or(strings.TrimSpace(snippet.Title), c.Title)
	}
	return c.Title
}

func (s *PointerService) thumbnail(ctx context.Context, c domain.Candidate, snippet *domain.Snippet) string {
	if s.config.Thumbnail != config.ThumbnailBest {
		return domain.ThumbnailURL(c.VideoID, domain.ThumbnailMaxRes)
	}
	if snippet != nil && snippet.ThumbnailURL != "" {
		return snippet.ThumbnailURL
	}
	if thumb, ok := s.metadata.Thumbnails(ctx, []string{c.VideoID})[c.VideoID]; ok {
		return thumb
	}
	return domain.ThumbnailURL(c.VideoID, domain.ThumbnailHQ)
}
