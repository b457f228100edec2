package config

// Kirtan channels polled by both ingestion pipelines.
var defaultChannels = []string{
	"UC884UDwNldmpdEiS1mgtijA",
	"UC_JnnWTC6gHc59JwfMPTjdw",
	"UCQroafhIKCxeQ0e9jj-O51Q",
	"UC71aJD7c8-FWf-nJ7ug2sfg",
	"UCUjIneSnBylQOqAk7n7i33A",
	"UC1wecYlMxn33DPHrhHHUyVw",
	"UCh0LDn5Drt44tITPoQiiJ6Q",
	"UCBe8nwY2SqWlrGKKcmxB0_w",
}

// Titles of events, promos and full paath recordings are kept out of the
// long-form collection.
var defaultExcludedKeywords = []string{
	"antim ardaas",
	"samagam",
	"semagam",
	"promo",
	"mela",
	"nagar kirtan",
	"teaser",
	"live",
	"chaupai",
	"japji",
	"sukhmani",
	"rehras",
	"ardaas",
	"ardas",
	"bhog",
	"bhogg",
	"akhand",
}

const (
	liveGurdwarasCollection = "Live-Gurdwaras-YouTube"
	harmandirSahibChannel   = "UCYn6UEtQ771a_OWSiNBoG8w"
	kesgarhSahibChannel     = "UCSx5035_us8h8DOp_YhQDaw"
)

func DefaultIngest() []IngestConfig {
	return []IngestConfig{
		{
			Name:            "videos",
			Collection:      "Kirtan-Youtube-Videos",
			IndexDocument:   "-All_Videos_Id",
			CountField:      "total_count",
			Channels:        append([]string(nil), defaultChannels...),
			ExcludeKeywords: append([]string(nil), defaultExcludedKeywords...),
			Duration:        DurationRule{Mode: DurationMin, Seconds: 180},
		},
		{
			Name:          "shorts",
			Collection:    "Shorts",
			IndexDocument: "-All_Shorts_Videos_Ids",
			CountField:    "ids_Count",
			Channels:      append([]string(nil), defaultChannels...),
			Duration:      DurationRule{Mode: DurationMax, Seconds: 80},
		},
	}
}

func DefaultPointers() []PointerConfig {
	return []PointerConfig{
		{
			Name:           "hukamnama",
			Collection:     liveGurdwarasCollection,
			ChannelID:      harmandirSahibChannel,
			MatchField:     "hukamnama",
			TitleContains:  "Hukamnama Sachkhand Sri Harmandir Sahib",
			Selection:      SelectionLatest,
			Thumbnail:      ThumbnailFixed,
			CandidateLimit: 5,
		},
		{
			Name:           "hukamnama_katha",
			Collection:     liveGurdwarasCollection,
			ChannelID:      harmandirSahibChannel,
			MatchField:     "hukamnama_katha",
			TitleContains:  "Hukamnama Katha",
			Selection:      SelectionLatest,
			Thumbnail:      ThumbnailBest,
			CandidateLimit: 5,
		},
		{
			Name:           "kesgarh_live",
			Collection:     liveGurdwarasCollection,
			ChannelID:      kesgarhSahibChannel,
			MatchField:     "channel_Id",
			TitleContains:  "Official SGPC LIVE",
			Selection:      SelectionLive,
			Thumbnail:      ThumbnailFixed,
			CandidateLimit: 5,
		},
	}
}
