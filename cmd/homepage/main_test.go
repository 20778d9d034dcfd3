package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/homepage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "homepage dev\n", out)
}

func TestNewCommandScaffoldsSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jane-doe")

	out, err := execute(t, "new", dir, "--author", "Jane Doe", "--url", "https://jane.example")
	require.NoError(t, err)
	assert.Contains(t, out, "Done!")

	cfg, err := homepage.LoadConfig(filepath.Join(dir, "homepage.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cfg.Name)
	assert.Equal(t, "Jane Doe", cfg.Author)
	assert.Equal(t, "https://jane.example", cfg.URL)
	assert.FileExists(t, filepath.Join(dir, "data", "games.json"))

	_, err = execute(t, "new", dir)
	assert.ErrorContains(t, err, "already exists")
}

func TestThumbsCommandRequiresArgs(t *testing.T) {
	_, err := execute(t, "thumbs", "only-one")
	assert.Error(t, err)
}

func TestThumbsCommandEmptyDir(t *testing.T) {
	out, err := execute(t, "thumbs", t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "0 thumbnails written")
}

func TestToTitle(t *testing.T) {
	assert.Equal(t, "My Site", toTitle("my-site"))
	assert.Equal(t, "Jane Doe", toTitle("jane_doe"))
	assert.Equal(t, "Homepage", toTitle("--"))
}
