package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so component bodies can emit
// markup without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

// component adapts a body function to templ.Component.
func component(body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		body(h)
		return h.err
	})
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes a URL attribute after templ's URL sanitization.
func (h *htmlWriter) href(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// bilingual writes the en/zh span pair; zh falls back to en.
func (h *htmlWriter) bilingual(en, zh string) {
	h.raw(`<span class="en">`)
	h.text(en)
	h.raw(`</span><span class="zh">`)
	h.text(fallback(zh, en))
	h.raw(`</span>`)
}

// externalLink writes an anchor opening in a new tab, or plain text when
// url is empty.
func (h *htmlWriter) externalLink(url, label, class string) {
	if url == "" {
		h.text(label)
		return
	}
	h.raw("<a")
	h.href("href", url)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(` target="_blank" rel="noopener">`)
	h.text(label)
	h.raw("</a>")
}

func (h *htmlWriter) tags(tags []string) {
	h.raw(`<div class="tag-row">`)
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			continue
		}
		h.raw(`<span class="tag">`)
		h.text(t)
		h.raw(`</span>`)
	}
	h.raw(`</div>`)
}

// fallback returns the first non-empty value.
func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
