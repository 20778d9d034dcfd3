package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/homepage"
)

// Publication renders one paper row.
func Publication(p homepage.Publication) templ.Component {
	return component(func(h *htmlWriter) { h.publication(p) })
}

func (h *htmlWriter) publication(p homepage.Publication) {
	h.raw(`<div class="pub reveal"`)
	if slug := homepage.Slugify(p.Title); slug != "" {
		h.attr("id", slug)
	}
	h.raw(`><div class="pub-thumb">`)
	if p.Image != "" {
		h.raw("<img")
		h.href("src", p.Image)
		h.raw(` alt="" loading="lazy" data-hide-on-error="self">`)
	}
	if p.ThumbLabel != "" {
		h.raw(`<span class="pub-thumb-label mono">`)
		h.text(p.ThumbLabel)
		h.raw(`</span>`)
	}
	h.raw(`</div><div class="pub-body">`)
	if p.LevelLabel != "" {
		h.raw(`<span`)
		h.attr("class", "pub-badge "+p.Level)
		h.raw(`>`)
		h.text(p.LevelLabel)
		h.raw(`</span>`)
	}
	h.raw(`<h3>`)
	h.externalLink(p.Link, p.Title, "")
	h.raw(`</h3>`)
	if p.Authors != "" {
		h.raw(`<p class="pub-meta">`)
		h.text(p.Authors)
		h.raw(`</p>`)
	}
	if p.Venue != "" || p.VenueZh != "" {
		h.raw(`<p class="pub-venue">`)
		h.bilingual(p.Venue, p.VenueZh)
		h.raw(`</p>`)
	}
	h.raw(`</div></div>`)
}

// PublicationCount renders the "N publications" header.
func PublicationCount(n int) templ.Component {
	return component(func(h *htmlWriter) { h.publicationCount(n) })
}

func (h *htmlWriter) publicationCount(n int) {
	h.bilingual(homepage.PublicationCountLabel(n, homepage.LangEn), homepage.PublicationCountLabel(n, homepage.LangZh))
}

// ProjectCard renders the compact project tile used on the home page.
func ProjectCard(p homepage.Project, counters homepage.Counters) templ.Component {
	return component(func(h *htmlWriter) { h.projectCard(p, counters) })
}

func (h *htmlWriter) projectCard(p homepage.Project, counters homepage.Counters) {
	h.raw(`<div class="proj-card reveal">`)
	h.projectHead(p, counters)
	h.raw(`<h3>`)
	h.externalLink(p.URL, p.Name, "")
	h.raw(`</h3>`)
	if p.Image != "" {
		h.raw(`<div class="proj-cover"><img`)
		h.href("src", p.Image)
		h.attr("alt", p.Name)
		h.raw(` loading="lazy" data-hide-on-error="parent"></div>`)
	}
	h.raw(`<p>`)
	h.bilingual(p.Desc, p.DescZh)
	h.raw(`</p>`)
	h.tags(p.Tags)
	h.raw(`</div>`)
}

// ProjectDetail renders the full project card of the projects page.
func ProjectDetail(p homepage.Project, counters homepage.Counters) templ.Component {
	return component(func(h *htmlWriter) { h.projectDetail(p, counters) })
}

func (h *htmlWriter) projectDetail(p homepage.Project, counters homepage.Counters) {
	h.raw(`<div class="proj-detail-card reveal"`)
	if slug := homepage.Slugify(p.Name); slug != "" {
		h.attr("id", slug)
	}
	h.raw(`><div class="proj-detail-top">`)
	h.projectHead(p, counters)
	h.raw(`<h3>`)
	h.externalLink(p.URL, p.Name, "")
	h.raw(`</h3>`)
	if p.Role != "" {
		h.raw(`<p class="proj-detail-role"><i class="fas fa-user-cog"></i> `)
		h.bilingual(p.Role, p.RoleZh)
		h.raw(`</p>`)
	}
	h.raw(`</div>`)
	if p.Image != "" {
		h.raw(`<div class="proj-detail-img"><img`)
		h.href("src", p.Image)
		h.attr("alt", p.Name)
		h.raw(` loading="lazy"></div>`)
	}
	h.raw(`<div class="proj-detail-body">`)
	h.markdownPair(fallback(p.Detail, p.Desc), fallback(p.DetailZh, p.DescZh, p.Desc))
	h.raw(`</div>`)
	h.tags(p.Tags)
	h.raw(`</div>`)
}

func (h *htmlWriter) projectHead(p homepage.Project, counters homepage.Counters) {
	h.raw(`<div class="proj-head"><span class="proj-icon mono">&gt;_</span>`)
	if p.StatusLabel != "" {
		h.raw(`<span`)
		h.attr("class", "proj-badge "+p.Status)
		h.raw(`>`)
		if p.StatusLabelZh != "" {
			h.bilingual(p.StatusLabel, p.StatusLabelZh)
		} else {
			h.text(p.StatusLabel)
		}
		h.raw(`</span>`)
	}
	h.stars(p.URL, counters)
	h.raw(`</div>`)
}

// stars writes the star badge for GitHub projects. The badge stays hidden
// until a count is known.
func (h *htmlWriter) stars(url string, counters homepage.Counters) {
	repo, ok := homepage.GitHubRepo(url)
	if !ok {
		return
	}
	n, known := counters.StarsFor(repo)
	h.raw(`<span class="proj-stars"`)
	h.attr("data-github-repo", repo)
	if !known {
		h.raw(` style="display:none"`)
	}
	h.raw(`><i class="fas fa-star"></i> <span class="stars-count">`)
	if known {
		h.text(homepage.FormatCount(n, homepage.LangEn))
	}
	h.raw(`</span></span>`)
}

// Award renders one award line. The official citation is shown only when
// detailed is set.
func Award(a homepage.Award, detailed bool) templ.Component {
	return component(func(h *htmlWriter) { h.award(a, detailed) })
}

func (h *htmlWriter) award(a homepage.Award, detailed bool) {
	h.raw(`<div class="award reveal">`)
	if a.Icon != "" {
		h.raw(`<span class="award-icon"><i`)
		h.attr("class", "fas "+a.Icon)
		h.raw(`></i></span>`)
	}
	h.raw(`<div><h4><span class="en">`)
	h.text(a.Title)
	if a.Result != "" {
		h.raw(` — <strong>`)
		h.text(a.Result)
		h.raw(`</strong>`)
	}
	h.raw(`</span><span class="zh">`)
	h.text(fallback(a.TitleZh, a.Title))
	if r := fallback(a.ResultZh, a.Result); r != "" {
		h.raw(` —— <strong>`)
		h.text(r)
		h.raw(`</strong>`)
	}
	h.raw(`</span></h4>`)
	if detailed && a.Official != "" {
		h.raw(`<p class="award-official mono">`)
		h.bilingual(a.Official, a.OfficialZh)
		h.raw(`</p>`)
	}
	if a.Contribution != "" {
		h.raw(`<p class="award-note">`)
		h.bilingual(a.Contribution, a.ContributionZh)
		h.raw(`</p>`)
	}
	h.raw(`</div></div>`)
}

// GameCard renders the compact game tile used on the home page.
func GameCard(g homepage.Game, counters homepage.Counters) templ.Component {
	return component(func(h *htmlWriter) { h.gameCard(g, counters) })
}

func (h *htmlWriter) gameCard(g homepage.Game, counters homepage.Counters) {
	h.raw(`<div class="game-card reveal">`)
	h.gameMedia(g, false)
	h.raw(`<div class="game-body"><h3>`)
	h.bilingual(g.Name, g.NameZh)
	h.raw(`</h3>`)
	h.gameRole(g)
	h.views(g.Video, counters)
	h.raw(`<p class="game-desc">`)
	h.bilingual(g.Desc, g.DescZh)
	h.raw(`</p>`)
	h.gameAwards(g)
	h.tags(g.Tags)
	h.raw(`</div></div>`)
}

// GameDetail renders the full game card of the games page.
func GameDetail(g homepage.Game, counters homepage.Counters) templ.Component {
	return component(func(h *htmlWriter) { h.gameDetail(g, counters) })
}

func (h *htmlWriter) gameDetail(g homepage.Game, counters homepage.Counters) {
	h.raw(`<div class="game-detail-card reveal"`)
	if slug := homepage.Slugify(g.Name); slug != "" {
		h.attr("id", slug)
	}
	h.raw(`><h3>`)
	h.bilingual(g.Name, g.NameZh)
	h.raw(`</h3>`)
	h.gameRole(g)
	h.views(g.Video, counters)
	h.gameMedia(g, true)
	h.raw(`<div class="game-detail-body">`)
	h.markdownPair(fallback(g.Detail, g.Desc), fallback(g.DetailZh, g.DescZh, g.Desc))
	h.raw(`</div>`)
	h.gameAwards(g)
	h.tags(g.Tags)

	var links []homepage.GameLink
	for _, l := range g.Links {
		if l.URL != "" {
			links = append(links, l)
		}
	}
	if len(links) > 0 {
		h.raw(`<div class="game-links">`)
		for _, l := range links {
			h.raw(`<a`)
			h.href("href", l.URL)
			h.raw(` target="_blank" rel="noopener" class="game-link">`)
			if l.Icon != "" {
				h.raw(`<i`)
				h.attr("class", l.Icon)
				h.raw(`></i> `)
			}
			h.text(fallback(l.Label, l.URL))
			h.raw(`</a>`)
		}
		h.raw(`</div>`)
	}
	h.raw(`</div>`)
}

// gameMedia writes the embedded player, the cover image, or nothing.
func (h *htmlWriter) gameMedia(g homepage.Game, large bool) {
	switch {
	case g.Video != "":
		if large {
			h.raw(`<div class="game-video game-video-lg">`)
		} else {
			h.raw(`<div class="game-video">`)
		}
		h.raw(`<iframe`)
		h.href("src", g.Video)
		h.attr("title", g.Name)
		h.raw(` scrolling="no" frameborder="no" allowfullscreen="true" loading="lazy"></iframe></div>`)
	case g.Image != "":
		if large {
			h.raw(`<div class="game-cover game-cover-lg"><img`)
		} else {
			h.raw(`<div class="game-cover"><img`)
		}
		h.href("src", g.Image)
		h.attr("alt", g.Name)
		h.raw(` loading="lazy"`)
		if !large {
			h.raw(` data-hide-on-error="parent"`)
		}
		h.raw(`></div>`)
	}
}

func (h *htmlWriter) gameRole(g homepage.Game) {
	h.raw(`<p class="game-role mono">`)
	h.bilingual(g.Role, g.RoleZh)
	h.raw(`</p>`)
}

func (h *htmlWriter) gameAwards(g homepage.Game) {
	if g.Awards == "" {
		return
	}
	h.raw(`<p class="game-awards"><i class="fas fa-trophy"></i> `)
	h.bilingual(g.Awards, g.AwardsZh)
	h.raw(`</p>`)
}

// views writes the play counter for Bilibili videos. It stays hidden until
// a count is known.
func (h *htmlWriter) views(video string, counters homepage.Counters) {
	bvid, ok := homepage.BilibiliID(video)
	if !ok {
		return
	}
	n, known := counters.ViewsFor(bvid)
	h.raw(`<p class="game-views"`)
	h.attr("data-bvid", bvid)
	if !known {
		h.raw(` style="display:none"`)
	}
	h.raw(`><i class="fas fa-play"></i> `)
	if known {
		h.bilingual(homepage.ViewsLabel(n, homepage.LangEn), homepage.ViewsLabel(n, homepage.LangZh))
	} else {
		h.raw(`<span class="en"></span><span class="zh"></span>`)
	}
	h.raw(`</p>`)
}
