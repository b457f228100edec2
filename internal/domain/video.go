package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	watchURLFormat     = "https://www.youtube.com/watch?v=%s"
	thumbnailURLFormat = "https://i.ytimg.com/vi/%s/%s.jpg"
)

// Thumbnail qualities served by the static image host.
const (
	ThumbnailHQ     = "hqdefault"
	ThumbnailMaxRes = "maxresdefault"
)

var ErrInvalidEntry = errors.New("invalid feed entry")

type LiveStatus string

const (
	LiveStatusNone     LiveStatus = "none"
	LiveStatusLive     LiveStatus = "live"
	LiveStatusUpcoming LiveStatus = "upcoming"
)

// Excluded reports whether a video in this state must not be ingested.
func (s LiveStatus) Excluded() bool {
	return s == LiveStatusLive || s == LiveStatusUpcoming
}

// RawEntry is a single feed entry as published by the channel feed.
type RawEntry struct {
	VideoID     string
	Title       string
	PublishedAt time.Time
}

// Candidate is a feed entry moving through the ingestion pipeline.
type Candidate struct {
	VideoID      string
	Title        string
	URL          string
	PublishedAt  time.Time
	Duration     int
	HasDuration  bool
	ThumbnailURL string
	LiveStatus   LiveStatus
}

func NewCandidate(e RawEntry) (Candidate, error) {
	id := strings.TrimSpace(e.VideoID)
	title := strings.TrimSpace(e.Title)
	if id == "" || title == "" || e.PublishedAt.IsZero() {
		return Candidate{}, fmt.Errorf("%w: id=%q title=%q", ErrInvalidEntry, id, title)
	}

	return Candidate{
		VideoID:     id,
		Title:       title,
		URL:         WatchURL(id),
		PublishedAt: e.PublishedAt.UTC(),
	}, nil
}

func WatchURL(videoID string) string {
	return fmt.Sprintf(watchURLFormat, videoID)
}

func ThumbnailURL(videoID, quality string) string {
	return fmt.Sprintf(thumbnailURLFormat, videoID, quality)
}

// VideoRecord is the document written once per accepted candidate.
type VideoRecord struct {
	VideoID        string
	Title          string
	TitleLowercase string
	URL            string
	ImageURL       string
	Timestamp      int64 // publish time, epoch milliseconds
}

func NewVideoRecord(c Candidate) VideoRecord {
	image := c.ThumbnailURL
	if image == "" {
		image = ThumbnailURL(c.VideoID, ThumbnailHQ)
	}

	return VideoRecord{
		VideoID:        c.VideoID,
		Title:          c.Title,
		TitleLowercase: strings.ToLower(c.Title),
		URL:            c.URL,
		ImageURL:       image,
		Timestamp:      c.PublishedAt.UnixMilli(),
	}
}

// Fields returns the record in document form.
func (r VideoRecord) Fields() map[string]any {
	return map[string]any{
		"title":          r.Title,
		"titleLowercase": r.TitleLowercase,
		"url":            r.URL,
		"imageUrl":       r.ImageURL,
		"timestamp":      r.Timestamp,
		"video_id":       r.VideoID,
	}
}

// Snippet is the subset of API metadata used to pick a pointer target.
type Snippet struct {
	VideoID      string
	Title        string
	LiveStatus   LiveStatus
	ThumbnailURL string
}
