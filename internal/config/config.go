package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/campusfeed/internal/catalog"
)

// Config is the persistent application configuration
type Config struct {
	// Event sources polled on each refresh
	Sources []SourceConfig `json:"sources"`

	// Catalog refresh period in minutes
	RefreshMinutes int `json:"refresh_minutes"`

	// Poll period for cross-process change detection, in milliseconds
	SyncPollMS int `json:"sync_poll_ms"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// SourceConfig represents a configured event source.
type SourceConfig struct {
	Type string `json:"type"` // "json", "rss", "ics"
	Name string `json:"name"`
	URL  string `json:"url"` // http(s) URL or local file path
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme    string `json:"theme"`
	PageSize int    `json:"page_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sources: []SourceConfig{
			{Type: catalog.SourceJSON, Name: "Campus Catalog", URL: DefaultCatalogPath()},
		},
		RefreshMinutes: 15,
		SyncPollMS:     1000,
		UI: UIConfig{
			Theme:    "dark",
			PageSize: 50,
		},
	}
}

// DataDir returns the application data directory
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".campusfeed")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// DefaultCatalogPath returns the path of the starter JSON catalog
func DefaultCatalogPath() string {
	return filepath.Join(DataDir(), "catalog.json")
}

// DatabasePath returns the path of the SQLite database
func DatabasePath() string {
	return filepath.Join(DataDir(), "feed.db")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// CatalogSources converts the configured sources for the fetcher.
// An empty list falls back to the default catalog so a hand-edited
// config cannot leave the feed with nothing to load.
func (c *Config) CatalogSources() []catalog.Source {
	if len(c.Sources) == 0 {
		return DefaultConfig().CatalogSources()
	}
	sources := make([]catalog.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		sources = append(sources, catalog.Source{Type: s.Type, Name: s.Name, URL: s.URL})
	}
	return sources
}

// RefreshInterval returns the catalog refresh period, falling back to the
// default so a zeroed config cannot spin the refresh loop.
func (c *Config) RefreshInterval() time.Duration {
	if c.RefreshMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// SyncPollInterval returns the cross-process poll period.
func (c *Config) SyncPollInterval() time.Duration {
	if c.SyncPollMS <= 0 {
		return time.Second
	}
	return time.Duration(c.SyncPollMS) * time.Millisecond
}
