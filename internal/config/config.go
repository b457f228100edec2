package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvFirebaseServiceAccount = "FIREBASE_SERVICE_ACCOUNT"
	EnvYouTubeAPIKey          = "YOUTUBE_API_KEY"
)

const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

const (
	DurationMin = "min"
	DurationMax = "max"

	SelectionLatest = "latest"
	SelectionLive   = "live"

	ThumbnailFixed = "fixed"
	ThumbnailBest  = "best"
)

var ErrMissingSecret = errors.New("missing required secret")

type Config struct {
	Store      StoreConfig     `yaml:"store"`
	RabbitMQ   RabbitMQConfig  `yaml:"rabbitmq"`
	Feed       FeedConfig      `yaml:"feed"`
	Metadata   MetadataConfig  `yaml:"metadata"`
	WriteDelay time.Duration   `yaml:"write_delay"`
	JobTimeout time.Duration   `yaml:"job_timeout"`
	Ingest     []IngestConfig  `yaml:"ingest"`
	Pointers   []PointerConfig `yaml:"pointers"`
	LogLevel   string          `yaml:"log_level"`
	Secrets    Secrets         `yaml:"-"`
}

// Secrets are read from the environment only.
type Secrets struct {
	FirebaseServiceAccount string
	YouTubeAPIKey          string
}

type StoreConfig struct {
	Backend  string         `yaml:"backend"`
	Postgres DatabaseConfig `yaml:"postgres"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Enabled reports whether events should be published.
func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type FeedConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

type MetadataConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Timeout         time.Duration `yaml:"timeout"`
	LiveChunkSize   int           `yaml:"live_chunk_size"`
	DetailChunkSize int           `yaml:"detail_chunk_size"`
	Retry           RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type DurationRule struct {
	Mode    string `yaml:"mode"`
	Seconds int    `yaml:"seconds"`
}

// IngestConfig describes one ingestion pipeline.
type IngestConfig struct {
	Name            string       `yaml:"name"`
	Collection      string       `yaml:"collection"`
	IndexDocument   string       `yaml:"index_document"`
	CountField      string       `yaml:"count_field"`
	Channels        []string     `yaml:"channels"`
	ExcludeKeywords []string     `yaml:"exclude_keywords"`
	Duration        DurationRule `yaml:"duration"`
}

// PointerConfig describes one latest-pointer updater.
type PointerConfig struct {
	Name           string `yaml:"name"`
	Collection     string `yaml:"collection"`
	ChannelID      string `yaml:"channel_id"`
	MatchField     string `yaml:"match_field"`
	TitleContains  string `yaml:"title_contains"`
	Selection      string `yaml:"selection"`
	Thumbnail      string `yaml:"thumbnail"`
	CandidateLimit int    `yaml:"candidate_limit"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Secrets = Secrets{
		FirebaseServiceAccount: os.Getenv(EnvFirebaseServiceAccount),
		YouTubeAPIKey:          os.Getenv(EnvYouTubeAPIKey),
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFirestore
	}
	if c.Store.Postgres.Port == 0 {
		c.Store.Postgres.Port = 5432
	}
	if c.Store.Postgres.SSLMode == "" {
		c.Store.Postgres.SSLMode = "disable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "video_syncer"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "videos"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "video_events"
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = 20 * time.Second
	}
	c.Feed.Retry.setDefaults()
	if c.Metadata.Timeout == 0 {
		c.Metadata.Timeout = 15 * time.Second
	}
	if c.Metadata.LiveChunkSize == 0 {
		c.Metadata.LiveChunkSize = 30
	}
	if c.Metadata.DetailChunkSize == 0 {
		c.Metadata.DetailChunkSize = 50
	}
	c.Metadata.Retry.setDefaults()
	if c.WriteDelay == 0 {
		c.WriteDelay = 30 * time.Millisecond
	}
	if c.JobTimeout == 0 {
		c.JobTimeout = 10 * time.Minute
	}
	if len(c.Ingest) == 0 {
		c.Ingest = DefaultIngest()
	}
	if len(c.Pointers) == 0 {
		c.Pointers = DefaultPointers()
	}
	for i := range c.Ingest {
		if c.Ingest[i].CountField == "" {
			c.Ingest[i].CountField = "total_count"
		}
	}
	for i := range c.Pointers {
		p := &c.Pointers[i]
		if p.Selection == "" {
			p.Selection = SelectionLatest
		}
		if p.Thumbnail == "" {
			p.Thumbnail = ThumbnailFixed
		}
		if p.CandidateLimit == 0 {
			p.CandidateLimit = 5
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (r *RetryConfig) setDefaults() {
	if r.MaxAttempts == 0 {
		r.MaxAttempts = 3
	}
	if r.InitialBackoff == 0 {
		r.InitialBackoff = 1 * time.Second
	}
	if r.MaxBackoff == 0 {
		r.MaxBackoff = 10 * time.Second
	}
}

// Validate checks secrets and job definitions. It expects defaults to be
// applied. The YouTube API key is always required. The Firebase service
// account is required only for the firestore backend; the postgres and
// memory backends never read it.
func (c *Config) Validate() error {
	if c.Secrets.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingSecret, EnvYouTubeAPIKey)
	}

	switch c.Store.Backend {
	case BackendFirestore:
		if c.Secrets.FirebaseServiceAccount == "" {
			return fmt.Errorf("%w: %s", ErrMissingSecret, EnvFirebaseServiceAccount)
		}
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Metadata.LiveChunkSize > 50 || c.Metadata.DetailChunkSize > 50 {
		return errors.New("metadata chunk sizes must not exceed 50")
	}

	names := make(map[string]bool)
	for _, in := range c.Ingest {
		if err := in.validate(); err != nil {
			return fmt.Errorf("ingest %q: %w", in.Name, err)
		}
		if names[in.Name] {
			return fmt.Errorf("duplicate job name %q", in.Name)
		}
		names[in.Name] = true
	}
	for _, p := range c.Pointers {
		if err := p.validate(); err != nil {
			return fmt.Errorf("pointer %q: %w", p.Name, err)
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate job name %q", p.Name)
		}
		names[p.Name] = true
	}

	return nil
}

func (in IngestConfig) validate() error {
	switch {
	case in.Name == "":
		return errors.New("name is required")
	case in.Name == "all":
		return errors.New(`"all" is reserved`)
	case in.Collection == "" || in.IndexDocument == "":
		return errors.New("collection and index_document are required")
	case len(in.Channels) == 0:
		return errors.New("at least one channel is required")
	case in.Duration.Mode != DurationMin && in.Duration.Mode != DurationMax:
		return fmt.Errorf("duration mode must be %q or %q", DurationMin, DurationMax)
	case in.Duration.Seconds <= 0:
		return errors.New("duration seconds must be positive")
	}
	return nil
}

func (p PointerConfig) validate() error {
	switch {
	case p.Name == "":
		return errors.New("name is required")
	case p.Name == "all":
		return errors.New(`"all" is reserved`)
	case p.Collection == "" || p.ChannelID == "" || p.MatchField == "":
		return errors.New("collection, channel_id and match_field are required")
	case p.TitleContains == "":
		return errors.New("title_contains is required")
	case p.Selection != SelectionLatest && p.Selection != SelectionLive:
		return fmt.Errorf("selection must be %q or %q", SelectionLatest, SelectionLive)
	case p.Thumbnail != ThumbnailFixed && p.Thumbnail != ThumbnailBest:
		return fmt.Errorf("thumbnail must be %q or %q", ThumbnailFixed, ThumbnailBest)
	case p.CandidateLimit < 1:
		return errors.New("candidate_limit must be positive")
	}
	return nil
}
