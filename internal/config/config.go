package config

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"freck/internal/errors"
)

// Config represents the complete freck configuration
type Config struct {
	RepoRoot string        `json:"repoRoot" mapstructure:"repoRoot"`
	Ranking  RankingConfig `json:"ranking" mapstructure:"ranking"`
	Cache    CacheConfig   `json:"cache" mapstructure:"cache"`
	Logging  LoggingConfig `json:"logging" mapstructure:"logging"`
}

// RankingConfig controls how commit history is turned into scores
type RankingConfig struct {
	// IgnorePatterns are glob patterns excluding paths from ranking
	IgnorePatterns []string `json:"ignorePatterns" mapstructure:"ignorePatterns"`
	// ReadMaxCommits caps how many recent commits are scanned (0 = unlimited).
	// The cap is applied to the log query itself, not by truncating output.
	ReadMaxCommits int `json:"readMaxCommits" mapstructure:"readMaxCommits"`
	// DecayPerDay is the exponential decay constant applied per day of age
	DecayPerDay float64 `json:"decayPerDay" mapstructure:"decayPerDay"`
}

// CacheConfig contains result cache configuration
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultDecayPerDay gives a half-life of roughly 69 days
const DefaultDecayPerDay = 0.01

// DefaultConfig returns the default configuration rooted at repoRoot
func DefaultConfig(repoRoot string) *Config {
	return &Config{
		RepoRoot: repoRoot,
		Ranking: RankingConfig{
			IgnorePatterns: []string{},
			ReadMaxCommits: 0,
			DecayPerDay:    DefaultDecayPerDay,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".freck",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <repoRoot>/.freck.yaml, falling back
// to defaults when no config file exists
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("repoRoot", repoRoot)
	v.SetDefault("ranking.ignorePatterns", []string{})
	v.SetDefault("ranking.readMaxCommits", 0)
	v.SetDefault("ranking.decayPerDay", DefaultDecayPerDay)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", ".freck")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName(".freck")
	v.SetConfigType("yaml")
	v.AddConfigPath(repoRoot)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(repoRoot), nil
		}
		return nil, errors.Wrap(errors.ConfigInvalid, "failed to read config file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid, "failed to parse config file", err)
	}
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = repoRoot
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RepoRoot == "" {
		return errors.New(errors.ConfigInvalid, "repoRoot must not be empty")
	}
	if c.Ranking.ReadMaxCommits < 0 {
		return errors.New(errors.ConfigInvalid, "ranking.readMaxCommits must not be negative").
			WithDetails(map[string]interface{}{"readMaxCommits": c.Ranking.ReadMaxCommits})
	}
	if c.Ranking.DecayPerDay <= 0 {
		return errors.New(errors.ConfigInvalid, "ranking.decayPerDay must be positive").
			WithDetails(map[string]interface{}{"decayPerDay": c.Ranking.DecayPerDay})
	}
	for _, pattern := range c.Ranking.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.New(errors.ConfigInvalid, "invalid ignore pattern").
				WithDetails(map[string]interface{}{"pattern": pattern})
		}
	}
	return nil
}

// CacheDir resolves the cache directory relative to the repo root
func (c *Config) CacheDir() string {
	if filepath.IsAbs(c.Cache.Dir) {
		return c.Cache.Dir
	}
	return filepath.Join(c.RepoRoot, c.Cache.Dir)
}
