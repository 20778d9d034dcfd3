package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/homepage"
)

const fontAwesomeCSS = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css"

// Layout wraps body in the full document: head, sidebar and main column.
func Layout(page homepage.Page, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", string(page.Prefs.Lang))
		h.attr("data-theme", string(page.Prefs.Theme))
		h.raw(">")
		h.head(page)
		h.raw("<body>")
		h.raw(`<button id="menuToggle" class="menu-toggle" type="button" aria-label="Menu"><i class="fas fa-bars"></i></button>`)
		h.sidebar(page)
		h.raw(`<div id="overlay" class="overlay"></div><main class="main">`)
		h.render(body)
		h.raw(`<footer class="footer mono">&copy; `)
		h.text(fallback(page.Site.Author, page.Site.Name))
		h.raw(`</footer></main></body></html>`)
	})
}

func (h *htmlWriter) head(page homepage.Page) {
	meta := page.Meta
	title := fallback(meta.Title, page.Site.Name)
	desc := fallback(meta.Description, page.Site.Description)

	h.raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	h.raw("<title>")
	h.text(title)
	h.raw("</title>")
	if desc != "" {
		h.raw(`<meta name="description"`)
		h.attr("content", desc)
		h.raw(">")
	}
	if meta.URL != "" {
		h.raw(`<link rel="canonical"`)
		h.href("href", meta.URL)
		h.raw(`><meta property="og:url"`)
		h.attr("content", meta.URL)
		h.raw(">")
	}
	h.raw(`<meta property="og:title"`)
	h.attr("content", title)
	h.raw(`><meta property="og:type"`)
	h.attr("content", fallback(meta.OGType, "website"))
	h.raw(`><meta property="og:site_name"`)
	h.attr("content", page.Site.Name)
	h.raw(">")
	if desc != "" {
		h.raw(`<meta property="og:description"`)
		h.attr("content", desc)
		h.raw(">")
	}
	h.raw(`<meta name="csrf-token"`)
	h.attr("content", page.CSRFToken)
	h.raw(">")
	h.raw(`<link rel="icon" type="image/svg+xml" href="/favicon.svg">`)
	h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`)
	h.attr("title", page.Site.Name)
	h.raw(">")
	h.raw(`<link rel="stylesheet"`)
	h.attr("href", fontAwesomeCSS)
	h.raw(` crossorigin="anonymous" referrerpolicy="no-referrer">`)
	h.raw(`<link rel="stylesheet" href="/public/style.css">`)
	if meta.JSONLD != "" {
		// JSON-LD comes from json.Marshal, which escapes <, > and &.
		h.raw(`<script type="application/ld+json">`, meta.JSONLD, `</script>`)
	}
	h.raw(`<script src="/public/site.js" defer></script></head>`)
}

func (h *htmlWriter) sidebar(page homepage.Page) {
	h.raw(`<aside id="sidebar" class="sidebar"><a class="brand mono" href="/">`)
	h.text(page.Site.Name)
	h.raw(`</a><nav class="nav">`)
	for _, item := range page.Nav {
		class := "nav-item"
		if item.Active {
			class += " active"
		}
		h.raw("<a")
		h.attr("class", class)
		h.href("href", item.Href)
		h.attr("data-sec", string(item.Section))
		h.raw(">")
		h.bilingual(item.LabelEn, item.LabelZh)
		h.raw("</a>")
	}
	h.raw(`</nav><div class="sidebar-tools">`)

	h.raw(`<form method="post" action="/prefs/theme/">`)
	h.csrfField(page.CSRFToken)
	h.raw(`<button type="submit" class="theme-toggle" aria-label="Toggle theme"><i`)
	h.attr("class", "fas "+page.Prefs.Theme.ThemeIcon())
	h.raw(`></i></button></form>`)

	h.raw(`<form method="post" action="/prefs/lang/">`)
	h.csrfField(page.CSRFToken)
	h.raw(`<button type="submit" class="lang-toggle mono" aria-label="Toggle language">`)
	h.bilingual("中文", "EN")
	h.raw(`</button></form>`)

	h.raw(`</div></aside>`)
}

func (h *htmlWriter) csrfField(token string) {
	h.raw(`<input type="hidden" name="_csrf"`)
	h.attr("value", token)
	h.raw(">")
}
