package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// Markdown renders a detail body. Raw HTML is omitted and dangerous link
// schemes are dropped. Input that fails to convert is written as escaped text.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			_, err = io.WriteString(w, templ.EscapeString(content))
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// markdownPair writes the en/zh blocks of a Markdown body.
func (h *htmlWriter) markdownPair(en, zh string) {
	h.raw(`<div class="en">`)
	h.render(Markdown(en))
	h.raw(`</div><div class="zh">`)
	h.render(Markdown(fallback(zh, en)))
	h.raw(`</div>`)
}
