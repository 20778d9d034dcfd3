package homepage

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/labstack/gommon/log"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: HOMEPAGE_CONTENT_DIR -> content_dir.
const EnvPrefix = "HOMEPAGE_"

// SiteConfig holds all configuration for a homepage site.
type SiteConfig struct {
	Name        string `yaml:"name" koanf:"name"`               // Site name (default "Homepage")
	URL         string `yaml:"url" koanf:"url"`                 // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description" koanf:"description"` // Meta description and RSS channel
	Author      string `yaml:"author" koanf:"author"`           // Person name for JSON-LD

	Addr         string `yaml:"addr" koanf:"addr"`                   // Listen address (default ":3000")
	ContentDir   string `yaml:"content_dir" koanf:"content_dir"`     // JSON fixtures (default "data")
	StaticDir    string `yaml:"static_dir" koanf:"static_dir"`       // Served under /public (default "public")
	DatabasePath string `yaml:"database_path" koanf:"database_path"` // Counter store (default "data/homepage.db")

	DefaultLang   string `yaml:"default_lang" koanf:"default_lang"`     // "en" or "zh" (default "en")
	SessionSecret string `yaml:"session_secret" koanf:"session_secret"` // Random per process when empty
	CookieSecure  bool   `yaml:"cookie_secure" koanf:"cookie_secure"`   // Set true for HTTPS

	ContentTTL      time.Duration `yaml:"content_ttl" koanf:"content_ttl"`           // Fixture cache TTL (default 1m)
	RefreshInterval time.Duration `yaml:"refresh_interval" koanf:"refresh_interval"` // Counter refresh (default 1h)
	APITimeout      time.Duration `yaml:"api_timeout" koanf:"api_timeout"`           // Upstream timeout (default 8s)

	GitHubToken       string `yaml:"github_token,omitempty" koanf:"github_token"`
	GitHubPerHour     int    `yaml:"github_per_hour" koanf:"github_per_hour"`         // default 50
	BilibiliPerMinute int    `yaml:"bilibili_per_minute" koanf:"bilibili_per_minute"` // default 60

	LogLevel string `yaml:"log_level" koanf:"log_level"` // debug, info, warn, error, off (default "info")
}

// LoadConfig reads configuration from the YAML file at path, when present,
// then overlays HOMEPAGE_* environment variables and applies defaults.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return SiteConfig{}, fmt.Errorf("homepage: reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return SiteConfig{}, fmt.Errorf("homepage: accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return SiteConfig{}, fmt.Errorf("homepage: loading env overrides: %w", err)
	}

	var cfg SiteConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("homepage: unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// Save writes the configuration to path as YAML.
func (c SiteConfig) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// WithDefaults returns a copy of c with every unset field defaulted.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Homepage"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "data"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/homepage.db"
	}
	if c.DefaultLang == "" {
		c.DefaultLang = string(LangEn)
	}
	if c.ContentTTL == 0 {
		c.ContentTTL = time.Minute
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = time.Hour
	}
	if c.APITimeout == 0 {
		c.APITimeout = 8 * time.Second
	}
	if c.GitHubPerHour == 0 {
		c.GitHubPerHour = 50
	}
	if c.BilibiliPerMinute == 0 {
		c.BilibiliPerMinute = 60
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

// Validate checks that the configuration contains usable values.
func (c SiteConfig) Validate() error {
	if _, ok := ParseLang(c.DefaultLang); !ok {
		return fmt.Errorf("homepage: invalid default_lang %q: must be en or zh", c.DefaultLang)
	}
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("homepage: invalid log_level %q", c.LogLevel)
	}
	if c.RefreshInterval < 0 || c.ContentTTL < 0 || c.APITimeout < 0 {
		return fmt.Errorf("homepage: durations must be non-negative")
	}
	if c.GitHubPerHour < 0 || c.BilibiliPerMinute < 0 {
		return fmt.Errorf("homepage: rate limits must be non-negative")
	}
	return nil
}

// Info returns the template-facing subset of the configuration.
func (c SiteConfig) Info() SiteInfo {
	return SiteInfo{Name: c.Name, URL: c.URL, Description: c.Description, Author: c.Author}
}

func (c SiteConfig) defaultLang() Lang {
	if l, ok := ParseLang(c.DefaultLang); ok {
		return l
	}
	return LangEn
}

func (c SiteConfig) logLevel() log.Lvl {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return log.INFO
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory served under /public.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithContentFS reads fixtures from fsys instead of Config.ContentDir.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithStarSource replaces the GitHub client.
func WithStarSource(s StarSource) Option {
	return func(a *App) {
		a.starSource = s
	}
}

// WithViewSource replaces the Bilibili client.
func WithViewSource(s ViewSource) Option {
	return func(a *App) {
		a.viewSource = s
	}
}

// WithHTTPClient sets the client used by the default upstream clients.
func WithHTTPClient(client *http.Client) Option {
	return func(a *App) {
		a.httpClient = client
	}
}
