package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"video_syncer/internal/domain"
)

type FeedSource interface {
	FetchChannel(ctx context.Context, channelID string) ([]domain.RawEntry, error)
}

// MetadataClient lookups are best effort and never fail; IDs whose chunk
// failed are simply absent from the result.
type MetadataClient interface {
	LiveOrUpcoming(ctx context.Context, ids []string) map[string]domain.LiveStatus
	Durations(ctx context.Context, ids []string) map[string]int
	Thumbnails(ctx context.Context, ids []string) map[string]string
	Snippets(ctx context.Context, ids []string) map[string]domain.Snippet
}

type KnownIDStore interface {
	Load(ctx context.Context) (domain.KnownIDs, error)
	Save(ctx context.Context, ids domain.KnownIDs) error
}

type VideoStore interface {
	Collection() string
	Insert(ctx context.Context, record domain.VideoRecord) (string, error)
}

type PointerStore interface {
	Collection() string
	Find(ctx context.Context) (*domain.Pointer, error)
	Update(ctx context.Context, id string, record domain.PointerRecord) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
