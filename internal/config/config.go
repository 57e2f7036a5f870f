// Package config loads gh-repos settings from defaults, an optional YAML
// file, GH_REPOS_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ghconfig "github.com/cli/go-gh/v2/pkg/config"
	"github.com/spf13/viper"

	"github.com/jparise/gh-repos/internal/reposync"
)

// FileName is the base name of the config file, looked up in gh's config
// directory unless a path is given explicitly.
const FileName = "gh-repos"

// Config holds all configuration for the application.
type Config struct {
	Search    SearchConfig    `mapstructure:"search"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Jobs      int             `mapstructure:"jobs"`
	Debug     bool            `mapstructure:"debug"`
}

// SearchConfig holds the defaults for repository searches.
type SearchConfig struct {
	Keyword string `mapstructure:"keyword"` // used when search is given no keywords
	Limit   int    `mapstructure:"limit"`
	Sort    string `mapstructure:"sort"`
	Order   string `mapstructure:"order"`
}

// BroadcastConfig holds settings for repository update delivery.
type BroadcastConfig struct {
	Buffer int `mapstructure:"buffer"`
}

// CacheConfig holds settings for the API response cache.
type CacheConfig struct {
	Disable bool          `mapstructure:"disable"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// New returns a viper instance with every key defaulted. Flags are bound to
// it before Load is called.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("search.keyword", "Android")
	v.SetDefault("search.limit", reposync.DefaultLimit)
	v.SetDefault("search.sort", string(reposync.SortStargazers))
	v.SetDefault("search.order", string(reposync.OrderDesc))
	v.SetDefault("broadcast.buffer", 64)
	v.SetDefault("jobs", 10)
	v.SetDefault("cache.disable", false)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", time.Duration(0))
	v.SetDefault("debug", false)
	return v
}

// Load reads the config file and environment into v and returns the
// validated result. An empty path searches gh's config directory, where a
// missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(ghconfig.ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("GH_REPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Search.Limit < 1 || c.Search.Limit > 100 {
		return fmt.Errorf("search.limit must be between 1 and 100, got %d", c.Search.Limit)
	}
	if _, err := reposync.ParseSort(c.Search.Sort); err != nil {
		return fmt.Errorf("search.sort: %w", err)
	}
	if _, err := reposync.ParseOrder(c.Search.Order); err != nil {
		return fmt.Errorf("search.order: %w", err)
	}
	if c.Broadcast.Buffer < 1 {
		return fmt.Errorf("broadcast.buffer must be positive, got %d", c.Broadcast.Buffer)
	}
	if c.Jobs < 1 || c.Jobs > 100 {
		return fmt.Errorf("jobs must be between 1 and 100, got %d", c.Jobs)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// SearchCondition returns the condition for keyword with the configured
// limit and ordering. A blank keyword falls back to search.keyword.
func (c *Config) SearchCondition(keyword string) reposync.SearchCondition {
	if strings.TrimSpace(keyword) == "" {
		keyword = c.Search.Keyword
	}
	sort, _ := reposync.ParseSort(c.Search.Sort)
	order, _ := reposync.ParseOrder(c.Search.Order)
	return reposync.SearchCondition{
		Keyword: keyword,
		Limit:   c.Search.Limit,
		Sort:    sort,
		Order:   order,
	}
}
