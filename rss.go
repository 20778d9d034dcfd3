package homepage

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Category    string  `xml:"category,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// renderRSS publishes the publication list as an RSS 2.0 feed. Entries
// without a link point at their anchor on the publications page.
func (a *App) renderRSS(c echo.Context, pubs []Publication) error {
	base := a.Config.URL
	listURL := BuildURL(base, string(SectionPublications))
	items := make([]rssItem, 0, len(pubs))
	for _, p := range pubs {
		link := p.Link
		permalink := link != ""
		if !permalink {
			link = listURL + "#" + Slugify(p.Title)
		}
		desc := p.Authors
		if p.Venue != "" {
			desc = strings.TrimSpace(desc + ". " + p.Venue)
		}
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: desc,
			Category:    p.LevelLabel,
			GUID:        rssGUID{Value: link, IsPermaLink: permalink},
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
