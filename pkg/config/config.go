// Package config loads and validates the YAML configuration
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/topicscope/pkg/cluster"
	"github.com/umputun/topicscope/pkg/embed"
	"github.com/umputun/topicscope/pkg/filter"
	"github.com/umputun/topicscope/pkg/repository"
)

//go:generate go run ../../cmd/schema/main.go ../../schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"required,default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"required,default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public URL used in RSS links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"required,default=file:topicscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Interval between refreshes"`
		ItemsPerSource int           `yaml:"items_per_source" json:"items_per_source" jsonschema:"default=5,minimum=1,description=Entries taken from each feed per refresh"`
		Concurrency    int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=4,minimum=1,description=Feeds fetched in parallel"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Embedding EmbeddingConfig `yaml:"embedding" json:"embedding" jsonschema:"description=Embeddings API configuration"`

	Clustering ClusteringConfig `yaml:"clustering" json:"clustering" jsonschema:"description=Topic clustering configuration"`

	Filter FilterConfig `yaml:"filter" json:"filter" jsonschema:"description=Relevance filter configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article text extraction used when a feed entry has no summary"`

	Sources []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=News sources seeded at startup"`
}

// EmbeddingConfig holds embeddings API settings
type EmbeddingConfig struct {
	Endpoint   string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey     string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model      string        `yaml:"model" json:"model" jsonschema:"required,default=text-embedding-3-large,description=Embedding model name"`
	Dimensions int           `yaml:"dimensions" json:"dimensions" jsonschema:"default=0,description=Requested vector size, 0 keeps the model default"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout per embedding call, retries included"`
	Retries    int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts per embedding call"`
	RateLimit  float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=0,description=Requests per second, 0 disables pacing"`
	Burst      int           `yaml:"burst" json:"burst" jsonschema:"default=1,description=Rate limiter burst"`
	MaxChars   int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=8000,description=Input truncation in characters"`
}

// ClusteringConfig holds topic clustering settings
type ClusteringConfig struct {
	SimilarityThreshold float64          `yaml:"similarity_threshold" json:"similarity_threshold" jsonschema:"default=0.78,minimum=0,maximum=1,description=Minimum cosine similarity to join a topic"`
	PoolSize            int              `yaml:"pool_size" json:"pool_size" jsonschema:"default=30,minimum=1,description=Most recent topics considered as candidates"`
	Popularity          PopularityConfig `yaml:"popularity" json:"popularity" jsonschema:"description=Popularity score weights"`
}

// PopularityConfig holds popularity scorer weights
type PopularityConfig struct {
	CoverageWeight  float64 `yaml:"coverage_weight" json:"coverage_weight" jsonschema:"default=0.4"`
	DiversityWeight float64 `yaml:"diversity_weight" json:"diversity_weight" jsonschema:"default=0.2"`
	VelocityWeight  float64 `yaml:"velocity_weight" json:"velocity_weight" jsonschema:"default=0.2"`
	Velocity        float64 `yaml:"velocity" json:"velocity" jsonschema:"default=60"`
	Initial         float64 `yaml:"initial" json:"initial" jsonschema:"default=10,description=Score of a new topic"`
}

// FilterConfig holds relevance filter settings
type FilterConfig struct {
	Keywords        []string `yaml:"keywords" json:"keywords" jsonschema:"description=Domain keywords, built-in AI keyword set when empty"`
	ExcludePatterns []string `yaml:"exclude_patterns" json:"exclude_patterns" jsonschema:"description=Noise regular expressions, built-in set when empty"`
}

// ExtractionConfig holds article extraction settings
type ExtractionConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable article text extraction"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	MaxChars  int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=500,description=Extracted summary length limit"`
}

// SourceConfig describes a news source
type SourceConfig struct {
	Name     string `yaml:"name" json:"name" jsonschema:"required,description=Source display name"`
	URL      string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Type     string `yaml:"type" json:"type" jsonschema:"default=rss,enum=rss"`
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Keep the source but stop polling it"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := newConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyRequired(cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	return cfg, nil
}

// newConfig makes a config pre-filled with the values for which zero is a valid setting,
// yaml keeps them unless a key is present in the file
func newConfig() *Config {
	def := cluster.DefaultScorer()
	cfg := &Config{}
	cfg.Clustering.SimilarityThreshold = 0.78
	cfg.Clustering.Popularity = PopularityConfig{
		CoverageWeight:  def.CoverageWeight,
		DiversityWeight: def.DiversityWeight,
		VelocityWeight:  def.VelocityWeight,
		Velocity:        def.Velocity,
		Initial:         def.Initial,
	}
	return cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:topicscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 30 * time.Minute
	}
	if cfg.Schedule.ItemsPerSource == 0 {
		cfg.Schedule.ItemsPerSource = 5
	}
	if cfg.Schedule.Concurrency == 0 {
		cfg.Schedule.Concurrency = 4
	}

	// embedding
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-large"
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 30 * time.Second
	}
	if cfg.Embedding.Retries == 0 {
		cfg.Embedding.Retries = 3
	}
	if cfg.Embedding.Burst == 0 {
		cfg.Embedding.Burst = 1
	}
	if cfg.Embedding.MaxChars == 0 {
		cfg.Embedding.MaxChars = 8000
	}

	// clustering, threshold and popularity come from newConfig
	if cfg.Clustering.PoolSize == 0 {
		cfg.Clustering.PoolSize = 30
	}

	// filter
	if len(cfg.Filter.Keywords) == 0 {
		cfg.Filter.Keywords = filter.DefaultKeywords
	}
	if len(cfg.Filter.ExcludePatterns) == 0 {
		cfg.Filter.ExcludePatterns = filter.DefaultExcludePatterns
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.MaxChars == 0 {
		cfg.Extraction.MaxChars = 500
	}

	for i := range cfg.Sources {
		if cfg.Sources[i].Type == "" {
			cfg.Sources[i].Type = "rss"
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Schedule.UpdateInterval < time.Minute {
		return fmt.Errorf("schedule.update_interval must be at least 1 minute")
	}
	if cfg.Schedule.ItemsPerSource < 1 {
		return fmt.Errorf("schedule.items_per_source must be at least 1")
	}
	if cfg.Schedule.Concurrency < 1 {
		return fmt.Errorf("schedule.concurrency must be at least 1")
	}

	if cfg.Embedding.Retries < 1 {
		return fmt.Errorf("embedding.retries must be at least 1")
	}
	if cfg.Embedding.RateLimit < 0 {
		return fmt.Errorf("embedding.rate_limit must be non-negative")
	}
	if cfg.Embedding.Dimensions < 0 {
		return fmt.Errorf("embedding.dimensions must be non-negative")
	}

	if cfg.Clustering.SimilarityThreshold < 0 || cfg.Clustering.SimilarityThreshold > 1 {
		return fmt.Errorf("clustering.similarity_threshold must be between 0 and 1")
	}
	if cfg.Clustering.PoolSize < 1 {
		return fmt.Errorf("clustering.pool_size must be at least 1")
	}

	for _, p := range cfg.Filter.ExcludePatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("filter.exclude_patterns: invalid pattern %q: %w", p, err)
		}
	}

	if cfg.Extraction.Enabled && cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}

	seen := make(map[string]bool, len(cfg.Sources))
	for i, s := range cfg.Sources {
		if s.Type != "rss" {
			return fmt.Errorf("sources[%d]: unsupported type %q", i, s.Type)
		}
		if seen[s.URL] {
			return fmt.Errorf("sources[%d]: duplicate url %s", i, s.URL)
		}
		seen[s.URL] = true
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen, baseURL string, timeout time.Duration) {
	return c.Server.Listen, c.Server.BaseURL, c.Server.Timeout
}

// RepositoryConfig returns database settings for the repositories
func (c *Config) RepositoryConfig() repository.Config {
	return repository.Config{
		DSN:             c.Database.DSN,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(c.Database.ConnMaxLifetime) * time.Second,
	}
}

// EmbedConfig returns embedder settings
func (c *Config) EmbedConfig() embed.Config {
	e := c.Embedding
	return embed.Config{Endpoint: e.Endpoint, APIKey: e.APIKey, Model: e.Model, Dimensions: e.Dimensions,
		Timeout: e.Timeout, Retries: e.Retries, RateLimit: e.RateLimit, Burst: e.Burst, MaxChars: e.MaxChars}
}

// Scorer returns the popularity scorer, stock per-item/per-source factors with configured weights
func (c *Config) Scorer() cluster.Scorer {
	s := cluster.DefaultScorer()
	p := c.Clustering.Popularity
	s.CoverageWeight, s.DiversityWeight, s.VelocityWeight = p.CoverageWeight, p.DiversityWeight, p.VelocityWeight
	s.Velocity, s.Initial = p.Velocity, p.Initial
	return s
}
