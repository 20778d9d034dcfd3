package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/homepage"
)

// Default returns the built-in page set.
func Default() homepage.ViewFuncs {
	return homepage.ViewFuncs{
		Home:           Home,
		Section:        Section,
		SectionPartial: SectionPartial,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

// Home renders the landing page with the featured records of every section.
func Home(page homepage.HomePage) templ.Component {
	return Layout(page.Page, component(func(h *htmlWriter) {
		h.raw(`<section id="about" class="sec hero"><h1 class="glitch-text">`)
		h.text(page.Site.Name)
		h.raw(`</h1>`)
		if page.Site.Description != "" {
			h.raw(`<p class="hero-desc">`)
			h.text(page.Site.Description)
			h.raw(`</p>`)
		}
		h.raw(`</section>`)

		h.render(SectionBlock(SectionBlockProps{
			Section:   homepage.SectionPublications,
			Featured:  true,
			Header:    publicationCountLine("pub-count", page.PublicationTotal),
			ListID:    "pub-featured",
			ListClass: "pub-list",
			Items: component(func(h *htmlWriter) {
				for _, p := range page.Publications {
					h.publication(p)
				}
			}),
		}))
		h.render(SectionBlock(SectionBlockProps{
			Section:   homepage.SectionProjects,
			Featured:  true,
			ListID:    "proj-featured",
			ListClass: "proj-grid",
			Items: component(func(h *htmlWriter) {
				for _, p := range page.Projects {
					h.projectCard(p, page.Counters)
				}
			}),
		}))
		h.render(SectionBlock(SectionBlockProps{
			Section:   homepage.SectionAwards,
			Featured:  true,
			ListID:    "award-featured",
			ListClass: "award-list",
			Items: component(func(h *htmlWriter) {
				for _, a := range page.Awards {
					h.award(a, false)
				}
			}),
		}))
		h.render(SectionBlock(SectionBlockProps{
			Section:   homepage.SectionGames,
			Featured:  true,
			ListID:    "game-featured",
			ListClass: "game-grid",
			Items: component(func(h *htmlWriter) {
				for _, g := range page.Games {
					h.gameCard(g, page.Counters)
				}
			}),
		}))
	}))
}

// Section renders the full listing page of one section.
func Section(page homepage.SectionPage) templ.Component {
	return Layout(page.Page, SectionPartial(page))
}

// SectionPartial renders only the listing, for HTMX swaps.
func SectionPartial(page homepage.SectionPage) templ.Component {
	props := SectionBlockProps{Section: page.Section}
	content, counters := page.Content, page.Counters
	switch page.Section {
	case homepage.SectionPublications:
		props.Header = publicationCountLine("pub-all-count", len(content.Publications))
		props.ListID, props.ListClass = "pub-all", "pub-list"
		props.Items = component(func(h *htmlWriter) {
			for _, p := range content.Publications {
				h.publication(p)
			}
		})
	case homepage.SectionProjects:
		props.ListID, props.ListClass = "proj-all", "proj-list"
		props.Items = component(func(h *htmlWriter) {
			for _, p := range content.Projects {
				h.projectDetail(p, counters)
			}
		})
	case homepage.SectionAwards:
		props.ListID, props.ListClass = "award-all", "award-list"
		props.Items = component(func(h *htmlWriter) {
			for _, a := range content.Awards {
				h.award(a, true)
			}
		})
	case homepage.SectionGames:
		props.ListID, props.ListClass = "game-all", "game-list"
		props.Items = component(func(h *htmlWriter) {
			for _, g := range content.Games {
				h.gameDetail(g, counters)
			}
		})
	}
	return SectionBlock(props)
}

// SectionBlockProps describes one content section.
type SectionBlockProps struct {
	Section   homepage.Section
	Featured  bool            // home page block, links to the full listing
	Header    templ.Component // optional, rendered after the heading
	ListID    string
	ListClass string
	Items     templ.Component
}

// SectionBlock renders a section with its heading and listing container.
func SectionBlock(p SectionBlockProps) templ.Component {
	return component(func(h *htmlWriter) {
		class := "sec"
		if !p.Featured {
			class += " sec-full"
		}
		h.raw("<section")
		h.attr("id", string(p.Section))
		h.attr("class", class)
		h.raw(`><div class="sec-head"><h2>`)
		en, zh := p.Section.Label()
		h.bilingual(en, zh)
		h.raw(`</h2>`)
		if p.Header != nil {
			h.render(p.Header)
		}
		if p.Featured {
			h.raw(`<a class="sec-more mono"`)
			h.href("href", "/"+string(p.Section)+"/")
			h.raw(">")
			h.bilingual("View all →", "查看全部 →")
			h.raw("</a>")
		}
		h.raw(`</div><div`)
		if p.ListID != "" {
			h.attr("id", p.ListID)
		}
		if p.ListClass != "" {
			h.attr("class", p.ListClass)
		}
		h.raw(">")
		if p.Items != nil {
			h.render(p.Items)
		}
		h.raw(`</div></section>`)
	})
}

func publicationCountLine(id string, n int) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw("<p")
		h.attr("id", id)
		h.raw(` class="sec-count mono">`)
		h.publicationCount(n)
		h.raw(`</p>`)
	})
}

// NotFound renders the 404 page.
func NotFound(page homepage.Page) templ.Component {
	return Layout(page, errorBody("404", "This page does not exist.", "页面不存在。"))
}

// ServerError renders the 500 page.
func ServerError(page homepage.Page) templ.Component {
	return Layout(page, errorBody("500", "Something went wrong. Please try again later.", "出错了，请稍后再试。"))
}

func errorBody(code, en, zh string) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<section class="sec sec-error"><h1 class="glitch-text">`)
		h.text(code)
		h.raw(`</h1><p>`)
		h.bilingual(en, zh)
		h.raw(`</p><a class="sec-more mono" href="/">`)
		h.bilingual("Back home", "返回首页")
		h.raw(`</a></section>`)
	})
}
