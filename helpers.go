package homepage

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// PersonJsonLD returns a JSON-LD ProfilePage for the site author, listing
// linked publications and GitHub projects as the person's works.
func PersonJsonLD(cfg SiteConfig, content Content) string {
	person := map[string]interface{}{
		"@type": "Person",
		"name":  cfg.Author,
		"url":   BuildURL(cfg.URL),
	}
	if cfg.Author == "" {
		person["name"] = cfg.Name
	}
	var works []map[string]string
	for _, p := range content.Publications {
		if p.Link == "" {
			continue
		}
		works = append(works, map[string]string{
			"@type": "ScholarlyArticle",
			"name":  p.Title,
			"url":   p.Link,
		})
	}
	var sameAs []string
	for _, p := range content.Projects {
		if _, ok := GitHubRepo(p.URL); ok {
			sameAs = append(sameAs, p.URL)
		}
	}
	if len(works) > 0 {
		person["workExample"] = works
	}
	if len(sameAs) > 0 {
		person["subjectOf"] = sameAs
	}
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "ProfilePage",
		"name":       cfg.Name,
		"mainEntity": person,
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
