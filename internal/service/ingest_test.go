package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"video_syncer/internal/config"
	"video_syncer/internal/domain"
	"video_syncer/internal/service/mocks"
	"video_syncer/internal/storage"
	"video_syncer/internal/storage/memory"
)

const (
	testCollection = "Videos"
	testIndexDoc   = "-All_Videos_Id"
)

type IngestServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	feed      *mocks.MockFeedSource
	metadata  *mocks.MockMetadataClient
	publisher *mocks.MockPublisher

	store    *memory.Store
	knownIDs *storage.KnownIDStore
	videos   *storage.VideoStore

	cfg    config.IngestConfig
	logger *slog.Logger
	base   time.Time
}

func (s *IngestServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.feed = mocks.NewMockFeedSource(s.ctrl)
	s.metadata = mocks.NewMockMetadataClient(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.store = memory.New()
	s.knownIDs = storage.NewKnownIDStore(s.store, testCollection, testIndexDoc, "total_count")
	s.videos = storage.NewVideoStore(s.store, testCollection)

	s.cfg = config.IngestConfig{
		Name:            "videos",
		Collection:      testCollection,
		IndexDocument:   testIndexDoc,
		CountField:      "total_count",
		Channels:        []string{"chanA", "chanB"},
		ExcludeKeywords: []string{"antim ardaas", "samagam"},
		Duration:        config.DurationRule{Mode: config.DurationMin, Seconds: 180},
	}

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *IngestServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestIngestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestServiceTestSuite))
}

func (s *IngestServiceTestSuite) newService(publisher Publisher) *IngestService {
	return NewIngestService(s.feed, s.metadata, s.knownIDs, s.videos, publisher, s.logger, s.cfg, 0)
}

func (s *IngestServiceTestSuite) entry(id, title string, minutes int) domain.RawEntry {
	return domain.RawEntry{
		VideoID:     id,
		Title:       title,
		PublishedAt: s.base.Add(time.Duration(minutes) * time.Minute),
	}
}

// records returns the video documents, leaving out the ID index.
func (s *IngestServiceTestSuite) records() []storage.Document {
	var out []storage.Document
	for _, doc := range s.store.All(testCollection) {
		if doc.ID != testIndexDoc {
			out = append(out, doc)
		}
	}
	return out
}

func (s *IngestServiceTestSuite) indexIDs() []string {
	doc, err := s.store.Get(context.Background(), testCollection, testIndexDoc)
	s.Require().NoError(err)
	ids, ok := doc.Fields["video_id"].([]string)
	s.Require().True(ok)
	return ids
}

func (s *IngestServiceTestSuite) TestRun_Accounting() {
	ctx := context.Background()
	s.store.Put(testCollection, testIndexDoc, map[string]any{"video_id": []any{"b2"}, "total_count": 1})

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("a1", "Morning Kirtan", 1),
		s.entry("a2", "Antim Ardaas Samagam Live", 2),
		s.entry("a3", "Short clip", 3),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return([]domain.RawEntry{
		s.entry("a1", "Morning Kirtan", 1),
		s.entry("b1", "Evening Broadcast", 4),
		s.entry("b2", "Already stored", 5),
	}, nil)

	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), []string{"a1", "a2", "a3", "b1"}).
		Return(map[string]domain.LiveStatus{"b1": domain.LiveStatusUpcoming})
	s.metadata.EXPECT().Durations(gomock.Any(), []string{"a1", "a2", "a3"}).
		Return(map[string]int{"a1": 600, "a2": 900, "a3": 60})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), []string{"a1", "a2", "a3"}).
		Return(map[string]string{"a1": "https://i.ytimg.com/vi/a1/maxresdefault.jpg"})

	stats, err := s.newService(nil).Run(ctx)
	s.Require().NoError(err)

	s.Equal(6, stats.Fetched)
	s.Equal(1, stats.SkippedExisting)
	s.Equal(1, stats.SkippedDuplicate)
	s.Equal(1, stats.SkippedLive)
	s.Equal(1, stats.SkippedKeywords)
	s.Equal(1, stats.SkippedDuration)
	s.Equal(1, stats.Inserted)
	s.Equal(0, stats.InsertErrors)
	s.Equal(2, stats.TotalKnown)
	s.True(stats.IndexUpdated)
	s.Equal(stats.Fetched, stats.SkippedExisting+stats.SkippedDuplicate+stats.SkippedLive+
		stats.SkippedKeywords+stats.SkippedDuration+stats.Inserted+stats.InsertErrors)

	records := s.records()
	s.Require().Len(records, 1)
	s.Equal(map[string]any{
		"title":          "Morning Kirtan",
		"titleLowercase": "morning kirtan",
		"url":            "https://www.youtube.com/watch?v=a1",
		"imageUrl":       "https://i.ytimg.com/vi/a1/maxresdefault.jpg",
		"timestamp":      s.base.Add(time.Minute).UnixMilli(),
		"video_id":       "a1",
	}, records[0].Fields)

	s.Equal([]string{"a1", "b2"}, s.indexIDs())
	doc, err := s.store.Get(ctx, testCollection, testIndexDoc)
	s.Require().NoError(err)
	s.Equal(2, doc.Fields["total_count"])
}

func (s *IngestServiceTestSuite) TestRun_Idempotent() {
	ctx := context.Background()
	entries := []domain.RawEntry{
		s.entry("v1", "Kirtan One", 1),
		s.entry("v2", "Kirtan Two", 2),
	}

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return(entries, nil).Times(2)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil).Times(2)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).
		Return(map[string]int{"v1": 300, "v2": 400}).Times(1)
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := s.newService(nil)

	first, err := svc.Run(ctx)
	s.Require().NoError(err)
	s.Equal(2, first.Inserted)

	second, err := svc.Run(ctx)
	s.Require().NoError(err)
	s.Equal(0, second.Inserted)
	s.Equal(2, second.SkippedExisting)
	s.False(second.IndexUpdated)
	s.Equal(2, second.TotalKnown)

	s.Len(s.records(), 2)
	s.Equal([]string{"v1", "v2"}, s.indexIDs())
}

func (s *IngestServiceTestSuite) TestRun_LiveNeverReachesLaterStages() {
	ctx := context.Background()

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("live1", "Live Kirtan", 1),
		s.entry("soon1", "Upcoming Kirtan", 2),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), []string{"live1", "soon1"}).
		Return(map[string]domain.LiveStatus{
			"live1": domain.LiveStatusLive,
			"soon1": domain.LiveStatusUpcoming,
		})

	stats, err := s.newService(nil).Run(ctx)
	s.Require().NoError(err)

	s.Equal(2, stats.SkippedLive)
	s.Equal(0, stats.Inserted)
	s.False(stats.IndexUpdated)
	s.Empty(s.records())

	_, err = s.store.Get(ctx, testCollection, testIndexDoc)
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *IngestServiceTestSuite) TestRun_ChannelFailureDoesNotStopOthers() {
	ctx := context.Background()

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return(nil, errors.New("connection reset"))
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return([]domain.RawEntry{
		s.entry("b1", "Kirtan", 1),
	}, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), []string{"b1"}).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), []string{"b1"}).Return(map[string]int{"b1": 200})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), []string{"b1"}).Return(nil)

	stats, err := s.newService(nil).Run(ctx)
	s.Require().NoError(err)

	s.Equal(1, stats.Fetched)
	s.Equal(1, stats.Inserted)
	records := s.records()
	s.Require().Len(records, 1)
	s.Equal("https://i.ytimg.com/vi/b1/hqdefault.jpg", records[0].Fields["imageUrl"])
}

func (s *IngestServiceTestSuite) TestRun_MissingDurationRejected() {
	ctx := context.Background()

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("v1", "Kirtan", 1),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).Return(map[string]int{})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(map[string]string{})

	stats, err := s.newService(nil).Run(ctx)
	s.Require().NoError(err)

	s.Equal(1, stats.SkippedDuration)
	s.Equal(0, stats.Inserted)
	s.False(stats.IndexUpdated)
}

func (s *IngestServiceTestSuite) TestRun_MaxDurationMode() {
	ctx := context.Background()
	s.cfg.ExcludeKeywords = nil
	s.cfg.Duration = config.DurationRule{Mode: config.DurationMax, Seconds: 80}

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("s1", "Short samagam", 1),
		s.entry("s2", "Short two", 2),
		s.entry("s3", "Short three", 3),
		s.entry("s4", "Short four", 4),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).
		Return(map[string]int{"s1": 79, "s2": 80, "s3": 0})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(nil)

	stats, err := s.newService(nil).Run(ctx)
	s.Require().NoError(err)

	s.Equal(0, stats.SkippedKeywords)
	s.Equal(3, stats.SkippedDuration)
	s.Equal(1, stats.Inserted)
	s.Equal([]string{"s1"}, s.indexIDs())
}

func (s *IngestServiceTestSuite) TestRun_ZeroNewIDsSkipsIndexWrite() {
	ctx := context.Background()
	knownIDs := mocks.NewMockKnownIDStore(s.ctrl)

	knownIDs.EXPECT().Load(gomock.Any()).Return(domain.NewKnownIDs("a1", "b1"), nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{s.entry("a1", "Kirtan", 1)}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return([]domain.RawEntry{s.entry("b1", "Kirtan", 2)}, nil)

	svc := NewIngestService(s.feed, s.metadata, knownIDs, s.videos, nil, s.logger, s.cfg, 0)
	stats, err := svc.Run(ctx)
	s.Require().NoError(err)

	s.Equal(2, stats.SkippedExisting)
	s.Equal(2, stats.TotalKnown)
	s.False(stats.IndexUpdated)
}

func (s *IngestServiceTestSuite) TestRun_InsertFailureKeepsVideoUnknown() {
	ctx := context.Background()
	knownIDs := mocks.NewMockKnownIDStore(s.ctrl)
	videos := mocks.NewMockVideoStore(s.ctrl)

	knownIDs.EXPECT().Load(gomock.Any()).Return(domain.NewKnownIDs(), nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{s.entry("a1", "Kirtan", 1)}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).Return(map[string]int{"a1": 500})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(nil)
	videos.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("", errors.New("deadline exceeded"))

	svc := NewIngestService(s.feed, s.metadata, knownIDs, videos, nil, s.logger, s.cfg, 0)
	stats, err := svc.Run(ctx)
	s.Require().NoError(err)

	s.Equal(1, stats.InsertErrors)
	s.Equal(0, stats.Inserted)
	s.Equal(0, stats.TotalKnown)
	s.False(stats.IndexUpdated)
}

func (s *IngestServiceTestSuite) TestRun_LoadFailureAborts() {
	knownIDs := mocks.NewMockKnownIDStore(s.ctrl)
	knownIDs.EXPECT().Load(gomock.Any()).Return(nil, errors.New("permission denied"))

	svc := NewIngestService(s.feed, s.metadata, knownIDs, s.videos, nil, s.logger, s.cfg, 0)
	stats, err := svc.Run(context.Background())

	s.Error(err)
	s.Nil(stats)
	s.Empty(s.records())
}

func (s *IngestServiceTestSuite) TestRun_SaveFailureReturnsStats() {
	ctx := context.Background()
	knownIDs := mocks.NewMockKnownIDStore(s.ctrl)

	knownIDs.EXPECT().Load(gomock.Any()).Return(domain.NewKnownIDs(), nil)
	knownIDs.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("unavailable"))
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{s.entry("a1", "Kirtan", 1)}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).Return(map[string]int{"a1": 500})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewIngestService(s.feed, s.metadata, knownIDs, s.videos, nil, s.logger, s.cfg, 0)
	stats, err := svc.Run(ctx)

	s.Require().Error(err)
	s.Require().NotNil(stats)
	s.Equal(1, stats.Inserted)
	s.False(stats.IndexUpdated)
	s.Len(s.records(), 1)
}

func (s *IngestServiceTestSuite) TestRun_PublishesIngestedEvents() {
	ctx := context.Background()
	var events []domain.Event

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("a1", "Kirtan One", 1),
		s.entry("a2", "Kirtan Two", 2),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).Return(map[string]int{"a1": 500, "a2": 500})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(nil)

	gomock.InOrder(
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e domain.Event) error {
				events = append(events, e)
				return nil
			}),
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("channel closed")),
	)

	stats, err := s.newService(s.publisher).Run(ctx)
	s.Require().NoError(err)

	s.Equal(2, stats.Inserted)
	s.Equal(1, stats.Published)
	s.Equal(1, stats.PublishErrors)
	s.Require().Len(events, 1)
	s.Equal(domain.EventVideoIngested, events[0].Type)
	s.Equal("a1", events[0].VideoID)
	s.Equal(testCollection, events[0].Collection)
	s.Equal("videos", events[0].Job)
	s.NotEmpty(events[0].DocumentID)
}

func (s *IngestServiceTestSuite) TestRun_CanceledContextStopsInserts() {
	ctx, cancel := context.WithCancel(context.Background())

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("a1", "Kirtan One", 1),
		s.entry("a2", "Kirtan Two", 2),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).Return(map[string]int{"a1": 500, "a2": 500})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []string) map[string]string {
			cancel()
			return nil
		})

	svc := NewIngestService(s.feed, s.metadata, s.knownIDs, s.videos, nil, s.logger, s.cfg, time.Hour)
	stats, err := svc.Run(ctx)
	s.Require().NoError(err)

	s.Equal(0, stats.Inserted)
	s.Empty(s.records())
}

func (s *IngestServiceTestSuite) TestRun_CanceledAfterInsertStillSavesIndex() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	docs := &cancelOnCreateStore{Store: s.store, cancel: cancel}
	knownIDs := storage.NewKnownIDStore(docs, testCollection, testIndexDoc, "total_count")
	videos := storage.NewVideoStore(docs, testCollection)

	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanA").Return([]domain.RawEntry{
		s.entry("a1", "Kirtan One", 1),
		s.entry("a2", "Kirtan Two", 2),
	}, nil)
	s.feed.EXPECT().FetchChannel(gomock.Any(), "chanB").Return(nil, nil)
	s.metadata.EXPECT().LiveOrUpcoming(gomock.Any(), gomock.Any()).Return(nil)
	s.metadata.EXPECT().Durations(gomock.Any(), gomock.Any()).Return(map[string]int{"a1": 500, "a2": 500})
	s.metadata.EXPECT().Thumbnails(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewIngestService(s.feed, s.metadata, knownIDs, videos, nil, s.logger, s.cfg, 0)
	stats, err := svc.Run(ctx)
	s.Require().NoError(err)

	s.Require().Error(ctx.Err())
	s.Equal(1, stats.Inserted)
	s.True(stats.IndexUpdated)
	s.Len(s.records(), 1)
	s.Equal([]string{"a1"}, s.indexIDs())
}
