package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"

	"video_syncer/internal/domain"
	"video_syncer/internal/retry"
)

const (
	SourceID       = "youtube"
	DefaultFeedURL = "https://www.youtube.com/feeds/videos.xml"

	guidPrefix = "yt:video:"
)

var ErrChannelNotFound = errors.New("channel not found")

// FeedError is returned when a channel feed cannot be fetched or parsed.
type FeedError struct {
	ChannelID string
	Err       error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("feed %s: %v", e.ChannelID, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// FeedConfig holds channel feed configuration.
type FeedConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   retry.Config
}

// FeedSource reads the public upload feed of a channel.
type FeedSource struct {
	httpClient *http.Client
	baseURL    string
	retry      retry.Config
	logger     *slog.Logger
}

func NewFeedSource(cfg FeedConfig, logger *slog.Logger) *FeedSource {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultFeedURL
	}

	return &FeedSource{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: baseURL,
		retry:   cfg.Retry,
		logger:  logger.With("source", SourceID),
	}
}

// FetchChannel returns the entries of the channel feed. Entries without a
// video ID, title or publish time are dropped.
func (s *FeedSource) FetchChannel(ctx context.Context, channelID string) ([]domain.RawEntry, error) {
	var feed *atom.Feed

	err := retry.Do(ctx, s.retry, nil, func(ctx context.Context) error {
		f, err := s.fetch(ctx, channelID)
		if err != nil {
			s.logger.Debug("feed request failed", "channel_id", channelID, "error", err)
			return err
		}
		feed = f
		return nil
	})
	if err != nil {
		return nil, &FeedError{ChannelID: channelID, Err: err}
	}

	entries := make([]domain.RawEntry, 0, len(feed.Entries))
	dropped := 0
	for _, e := range feed.Entries {
		entry, ok := toRawEntry(e)
		if !ok {
			dropped++
			continue
		}
		entries = append(entries, entry)
	}

	if dropped > 0 {
		s.logger.Debug("dropped malformed feed entries", "channel_id", channelID, "dropped", dropped)
	}

	return entries, nil
}

func (s *FeedSource) fetch(ctx context.Context, channelID string) (*atom.Feed, error) {
	feedURL := s.baseURL + "?channel_id=" + url.QueryEscape(channelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/atom+xml")
	req.Header.Set("User-Agent", "VideoSyncer/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Permanent(ErrChannelNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	parser := &atom.Parser{}
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("parse feed: %w", err))
	}

	return feed, nil
}

// toRawEntry reads the entry's own published element; the generic feed
// translator would substitute the updated time, which is not wanted here.
func toRawEntry(e *atom.Entry) (domain.RawEntry, bool) {
	if e == nil || e.PublishedParsed == nil {
		return domain.RawEntry{}, false
	}

	id := videoID(e)
	title := strings.TrimSpace(e.Title)
	if id == "" || title == "" {
		return domain.RawEntry{}, false
	}

	return domain.RawEntry{
		VideoID:     id,
		Title:       title,
		PublishedAt: e.PublishedParsed.UTC(),
	}, true
}

// videoID prefers the yt:videoId extension and falls back to the entry ID.
func videoID(e *atom.Entry) string {
	if yt, ok := e.Extensions["yt"]; ok {
		if values := yt["videoId"]; len(values) > 0 {
			if id := strings.TrimSpace(values[0].Value); id != "" {
				return id
			}
		}
	}
	if strings.HasPrefix(e.ID, guidPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(e.ID, guidPrefix))
	}
	return ""
}
