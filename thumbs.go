package homepage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
)

const (
	maxThumbWidth = 480
	jpegQuality   = 80
	thumbPattern  = "**/*.{png,jpg,jpeg,gif,PNG,JPG,JPEG,GIF}"
)

// Thumbnail describes one generated thumbnail.
type Thumbnail struct {
	Source string // path relative to the source dir
	Output string // path relative to the output dir
	Width  int
	Height int
	Size   int
}

// processThumbnail decodes an image from src, downsizes it to maxThumbWidth
// when wider, and encodes it as JPEG.
func processThumbnail(src io.Reader) (width, height int, data []byte, err error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxThumbWidth {
		newH := h * maxThumbWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxThumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxThumbWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return 0, 0, nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return w, h, buf.Bytes(), nil
}

// ThumbnailName maps a source image path to its thumbnail path: the
// directory is kept, the base name is slugified, and the extension is .jpg.
func ThumbnailName(rel string) string {
	dir := filepath.Dir(rel)
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	name := Slugify(base)
	if name == "" {
		name = "image"
	}
	return filepath.Join(dir, name+".jpg")
}

// GenerateThumbnails writes a JPEG thumbnail into outDir for every image
// under srcDir. Images that fail to decode or write are reported on
// progress and skipped. Progress is drawn only when progress is non-nil.
func GenerateThumbnails(srcDir, outDir string, progress io.Writer) ([]Thumbnail, error) {
	matches, err := doublestar.Glob(os.DirFS(srcDir), thumbPattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", srcDir, err)
	}

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(matches),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("Generating thumbnails"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var thumbs []Thumbnail
	for _, rel := range matches {
		if bar != nil {
			_ = bar.Add(1)
		}
		thumb, err := writeThumbnail(srcDir, outDir, rel)
		if err != nil {
			if progress != nil {
				fmt.Fprintf(progress, "skip %s: %v\n", rel, err)
			}
			continue
		}
		thumbs = append(thumbs, thumb)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return thumbs, nil
}

func writeThumbnail(srcDir, outDir, rel string) (Thumbnail, error) {
	f, err := os.Open(filepath.Join(srcDir, filepath.FromSlash(rel)))
	if err != nil {
		return Thumbnail{}, err
	}
	defer f.Close()

	w, h, data, err := processThumbnail(f)
	if err != nil {
		return Thumbnail{}, err
	}

	out := ThumbnailName(filepath.FromSlash(rel))
	dst := filepath.Join(outDir, out)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Thumbnail{}, fmt.Errorf("create thumbnail dir: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return Thumbnail{}, fmt.Errorf("write thumbnail: %w", err)
	}
	return Thumbnail{Source: rel, Output: out, Width: w, Height: h, Size: len(data)}, nil
}
