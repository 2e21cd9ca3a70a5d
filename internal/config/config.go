package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// NOTE: the config file only holds preferences. Credentials are never
// read from or written to it.

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	FormatTable = "table"
	FormatICS   = "ics"

	// SchoolPlaceholder is substituted in BaseURL.
	SchoolPlaceholder = "{school}"

	defaultBaseURL = "https://" + SchoolPlaceholder + ".zportal.nl/api/v3"
	defaultTimeout = 30 * time.Second
)

// Config is the top-level application configuration.
type Config struct {
	// School is the default school identifier when none is given on the
	// command line.
	School string `yaml:"school"`

	// Timezone is the IANA timezone that defines "today" and display
	// times (e.g. "Europe/Amsterdam"). Empty means the machine's local zone.
	Timezone string `yaml:"timezone"`

	// BaseURL is the API root template; SchoolPlaceholder is replaced by
	// the school identifier.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout"`

	// Color is one of "auto", "always" or "never".
	Color string `yaml:"color"`

	// Format is the output format: "table" or "ics".
	Format string `yaml:"format"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
		Color:   ColorAuto,
		Format:  FormatTable,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/zermelo-cli/config.yaml (or the
// platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "zermelo-cli", "config.yaml")
}

// Normalize fills in missing or invalid values with defaults.
func (c *Config) Normalize() {
	c.School = strings.TrimSpace(c.School)
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		c.Color = ColorAuto
	}
	switch c.Format {
	case FormatTable, FormatICS:
	default:
		c.Format = FormatTable
	}
}

// Validate reports settings that cannot be repaired by Normalize.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if !strings.Contains(c.BaseURL, "://") {
		return fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}
	return nil
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BaseURLFor expands the BaseURL template for a school.
func (c *Config) BaseURLFor(school string) string {
	return strings.TrimRight(strings.ReplaceAll(c.BaseURL, SchoolPlaceholder, school), "/")
}

// Load reads configuration from the given YAML path.
//
// Behavior:
//   - An empty path or a missing file yields DefaultConfig; no file is
//     created.
//   - Otherwise the YAML is unmarshalled over the defaults, normalized and
//     validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
