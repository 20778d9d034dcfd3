package homepage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Homepage", cfg.Name)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data", cfg.ContentDir)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, time.Minute, cfg.ContentTTL)
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 8*time.Second, cfg.APITimeout)
	assert.Equal(t, 50, cfg.GitHubPerHour)
	assert.Equal(t, 60, cfg.BilibiliPerMinute)
	assert.Equal(t, LangEn, cfg.defaultLang())
}

func TestLoadConfigFromYAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homepage.yaml")
	yaml := `name: Jane Doe
url: https://jane.example/
default_lang: zh
content_ttl: 30s
github_per_hour: 10
log_level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("HOMEPAGE_ADDR", ":8080")
	t.Setenv("HOMEPAGE_NAME", "Env Name")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Env Name", cfg.Name, "env wins over file")
	assert.Equal(t, "https://jane.example", cfg.URL, "trailing slash trimmed")
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, LangZh, cfg.defaultLang())
	assert.Equal(t, 30*time.Second, cfg.ContentTTL)
	assert.Equal(t, 10, cfg.GitHubPerHour)
	assert.Equal(t, log.WARN, cfg.logLevel())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homepage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_lang: fr\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "default_lang")
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homepage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := SiteConfig{}.WithDefaults()
	require.NoError(t, base.Validate())

	bad := base
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())

	bad = base
	bad.APITimeout = -time.Second
	assert.Error(t, bad.Validate())

	bad = base
	bad.BilibiliPerMinute = -1
	assert.Error(t, bad.Validate())
}

func TestSaveRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homepage.yaml")
	want := SiteConfig{Name: "Saved", Author: "Jane", RefreshInterval: 2 * time.Hour}.WithDefaults()

	require.NoError(t, want.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh_interval: 2h0m0s")
	assert.NotContains(t, string(data), "github_token")

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
