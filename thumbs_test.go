package homepage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestProcessThumbnailDownscalesWideImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 960, 480))))

	w, h, data, err := processThumbnail(&buf)
	require.NoError(t, err)
	assert.Equal(t, 480, w)
	assert.Equal(t, 240, h)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Width)
}

func TestProcessThumbnailKeepsSmallImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 200, 100))))

	w, h, _, err := processThumbnail(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, h)
}

func TestProcessThumbnailRejectsGarbage(t *testing.T) {
	_, _, _, err := processThumbnail(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestThumbnailName(t *testing.T) {
	assert.Equal(t, "paper-one.jpg", ThumbnailName("Paper One.PNG"))
	assert.Equal(t, filepath.Join("2024", "fig-1.jpg"), ThumbnailName(filepath.Join("2024", "Fig_1.gif")))
	assert.Equal(t, "image.jpg", ThumbnailName("图.png"))
}

func TestGenerateThumbnails(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(src, "Wide Figure.png"), 1000, 500)
	writePNG(t, filepath.Join(src, "nested", "small.png"), 100, 50)
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.jpg"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("ignored"), 0o644))

	var progress bytes.Buffer
	thumbs, err := GenerateThumbnails(src, out, &progress)
	require.NoError(t, err)

	require.Len(t, thumbs, 2)
	byName := map[string]Thumbnail{}
	for _, th := range thumbs {
		byName[th.Output] = th
	}
	wide, ok := byName["wide-figure.jpg"]
	require.True(t, ok)
	assert.Equal(t, 480, wide.Width)
	assert.Equal(t, 240, wide.Height)
	assert.FileExists(t, filepath.Join(out, "wide-figure.jpg"))
	assert.FileExists(t, filepath.Join(out, "nested", "small.jpg"))
	assert.Contains(t, progress.String(), "skip broken.jpg")
}

func TestGenerateThumbnailsWithoutProgress(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "a.png"), 10, 10)

	thumbs, err := GenerateThumbnails(src, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Len(t, thumbs, 1)
}
