package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"video_syncer/internal/domain"
	"video_syncer/internal/retry"
)

// MaxIDsPerCall is the videos.list limit on the id parameter.
const MaxIDsPerCall = 50

const (
	partSnippet        = "snippet"
	partContentDetails = "contentDetails"
)

// MetadataConfig holds Data API configuration.
type MetadataConfig struct {
	// Endpoint overrides the API base URL, mainly for tests.
	Endpoint        string
	Timeout         time.Duration
	LiveChunkSize   int
	DetailChunkSize int
	Retry           retry.Config
}

// MetadataClient looks up video metadata in batches. Every lookup is
// best effort: a failed chunk is logged and its IDs are missing from the
// result.
type MetadataClient struct {
	service     *yt.Service
	timeout     time.Duration
	liveChunk   int
	detailChunk int
	retry       retry.Config
	logger      *slog.Logger
}

func NewMetadataClient(ctx context.Context, apiKey string, cfg MetadataConfig, logger *slog.Logger) (*MetadataClient, error) {
	if apiKey == "" {
		return nil, errors.New("api key required")
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &MetadataClient{
		service:     service,
		timeout:     cfg.Timeout,
		liveChunk:   clampChunk(cfg.LiveChunkSize),
		detailChunk: clampChunk(cfg.DetailChunkSize),
		retry:       cfg.Retry,
		logger:      logger.With("source", SourceID),
	}, nil
}

// LiveOrUpcoming returns the IDs that are currently broadcasting or
// scheduled. IDs the API does not know are not included.
func (c *MetadataClient) LiveOrUpcoming(ctx context.Context, ids []string) map[string]domain.LiveStatus {
	result := make(map[string]domain.LiveStatus)

	c.eachChunk(ctx, "live_status", ids, c.liveChunk, []string{partSnippet}, func(v *yt.Video) {
		if v.Snippet == nil {
			return
		}
		status := domain.LiveStatus(v.Snippet.LiveBroadcastContent)
		if status.Excluded() {
			result[v.Id] = status
			c.logger.Info("detected live or upcoming video", "video_id", v.Id, "status", status)
		}
	})

	return result
}

// Durations returns the length of each video in seconds.
func (c *MetadataClient) Durations(ctx context.Context, ids []string) map[string]int {
	result := make(map[string]int, len(ids))

	c.eachChunk(ctx, "durations", ids, c.detailChunk, []string{partContentDetails}, func(v *yt.Video) {
		if v.ContentDetails == nil {
			return
		}
		result[v.Id] = ParseDuration(v.ContentDetails.Duration)
	})

	return result
}

// Thumbnails returns the highest resolution thumbnail of each video.
func (c *MetadataClient) Thumbnails(ctx context.Context, ids []string) map[string]string {
	result := make(map[string]string, len(ids))

	c.eachChunk(ctx, "thumbnails", ids, c.detailChunk, []string{partSnippet}, func(v *yt.Video) {
		if v.Snippet == nil {
			return
		}
		result[v.Id] = BestThumbnail(v.Snippet.Thumbnails, v.Id)
	})

	return result
}

// Snippets returns title, broadcast state and thumbnail of each video.
func (c *MetadataClient) Snippets(ctx context.Context, ids []string) map[string]domain.Snippet {
	result := make(map[string]domain.Snippet, len(ids))

	c.eachChunk(ctx, "snippets", ids, c.detailChunk, []string{partSnippet}, func(v *yt.Video) {
		if v.Snippet == nil {
			return
		}
		status := domain.LiveStatus(v.Snippet.LiveBroadcastContent)
		if status == "" {
			status = domain.LiveStatusNone
		}
		result[v.Id] = domain.Snippet{
			VideoID:      v.Id,
			Title:        v.Snippet.Title,
			LiveStatus:   status,
			ThumbnailURL: BestThumbnail(v.Snippet.Thumbnails, v.Id),
		}
	})

	return result
}

func (c *MetadataClient) eachChunk(ctx context.Context, lookup string, ids []string, size int, parts []string, fn func(*yt.Video)) {
	if len(ids) == 0 {
		return
	}

	for chunk := range slices.Chunk(ids, size) {
		videos, err := c.listVideos(ctx, parts, chunk)
		if err != nil {
			c.logger.Warn("metadata chunk failed",
				"lookup", lookup,
				"chunk_size", len(chunk),
				"first_id", chunk[0],
				"error", err,
			)
			continue
		}
		for _, v := range videos {
			if v != nil && v.Id != "" {
				fn(v)
			}
		}
	}
}

func (c *MetadataClient) listVideos(ctx context.Context, parts, ids []string) ([]*yt.Video, error) {
	var items []*yt.Video

	err := retry.Do(ctx, c.retry, apiErrorClassifier, func(ctx context.Context) error {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		resp, err := c.service.Videos.List(parts).Id(ids...).Context(callCtx).Do()
		if err != nil {
			return err
		}
		items = resp.Items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return items, nil
}

// apiErrorClassifier retries throttling and server errors only. Quota and
// request errors will not improve on a second attempt.
func apiErrorClassifier(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

// BestThumbnail picks the richest available resolution, falling back to the
// static hqdefault image.
func BestThumbnail(details *yt.ThumbnailDetails, videoID string) string {
	if details != nil {
		for _, t := range []*yt.Thumbnail{details.Maxres, details.Standard, details.High, details.Medium, details.Default} {
			if t != nil && t.Url != "" {
				return t.Url
			}
		}
	}
	return domain.ThumbnailURL(videoID, domain.ThumbnailHQ)
}

func clampChunk(n int) int {
	if n <= 0 || n > MaxIDsPerCall {
		return MaxIDsPerCall
	}
	return n
}
