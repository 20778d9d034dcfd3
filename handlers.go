package homepage

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// basePage fills the layout data shared by every page.
func (a *App) basePage(c echo.Context, meta PageMeta, nav []NavItem) Page {
	return Page{
		Site:      a.Config.Info(),
		Meta:      meta,
		Prefs:     a.loadPreferences(c),
		Nav:       nav,
		CSRFToken: CsrfToken(c),
	}
}

// handleHome serves the landing page with the featured records of every
// collection.
func (a *App) handleHome(c echo.Context) error {
	content := a.Content.Content()
	meta := PageMeta{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL),
		OGType:      "profile",
		JSONLD:      PersonJsonLD(a.Config, content),
	}
	page := HomePage{
		Page:             a.basePage(c, meta, HomeNav()),
		Publications:     FeaturedPublications(content.Publications),
		PublicationTotal: len(content.Publications),
		Projects:         FeaturedProjects(content.Projects),
		Awards:           FeaturedAwards(content.Awards),
		Games:            FeaturedGames(content.Games),
		Counters:         a.Counters.Snapshot(),
	}
	return Render(c, a.Views.Home(page))
}

// handleSection serves the full listing of one section, with HTMX partial
// support.
func (a *App) handleSection(c echo.Context) error {
	section, ok := ParseSection(strings.Trim(c.Path(), "/"))
	if !ok {
		return echo.ErrNotFound
	}
	en, _ := section.Label()
	meta := PageMeta{
		Title:       fmt.Sprintf("%s · %s", en, a.Config.Name),
		Description: a.Config.Description,
		URL:         BuildURL(a.Config.URL, string(section)),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(a.Config),
	}
	page := SectionPage{
		Page:     a.basePage(c, meta, SectionNav(section)),
		Section:  section,
		Content:  a.Content.Content(),
		Counters: a.Counters.Snapshot(),
	}
	if c.Request().Header.Get("HX-Request") == "true" && c.QueryParam("partial") == "section" {
		return Render(c, a.Views.SectionPartial(page))
	}
	return Render(c, a.Views.Section(page))
}

// handleCounters exposes the current counters for client-side refreshes.
func (a *App) handleCounters(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Counters.Snapshot())
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Content.Content().Publications)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /prefs/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	page := a.basePage(c, PageMeta{Title: a.Config.Name}, SectionNav(""))
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(page))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(page))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
