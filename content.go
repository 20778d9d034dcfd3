package homepage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
)

// Fixture file names inside the content directory.
const (
	PublicationsFile = "publications.json"
	ProjectsFile     = "projects.json"
	AwardsFile       = "awards.json"
	GamesFile        = "games.json"
)

// LoadContent reads all four collections from fsys. It never fails: a missing
// or malformed document yields an empty collection and a logged warning.
func LoadContent(fsys fs.FS, logger echo.Logger) Content {
	return Content{
		Publications: loadCollection(fsys, PublicationsFile, logger, func(p Publication) bool {
			return strings.TrimSpace(p.Title) != ""
		}),
		Projects: loadCollection(fsys, ProjectsFile, logger, func(p Project) bool {
			return strings.TrimSpace(p.Name) != ""
		}),
		Awards: loadCollection(fsys, AwardsFile, logger, func(a Award) bool {
			return strings.TrimSpace(a.Title) != ""
		}),
		Games: loadCollection(fsys, GamesFile, logger, func(g Game) bool {
			return strings.TrimSpace(g.Name) != ""
		}),
	}
}

func loadCollection[T any](fsys fs.FS, name string, logger echo.Logger, valid func(T) bool) []T {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("content: %s not found", name)
		} else {
			logger.Warnf("content: read %s: %v", name, err)
		}
		return []T{}
	}
	items, skipped, err := decodeCollection(data, valid)
	if err != nil {
		logger.Warnf("content: parse %s: %v", name, err)
		return []T{}
	}
	if skipped > 0 {
		logger.Warnf("content: %s: skipped %d malformed entries", name, skipped)
	}
	return items
}

// decodeCollection decodes a JSON array entry by entry so one bad record
// does not take its siblings down. Entries failing to decode or rejected by
// valid are counted in skipped.
func decodeCollection[T any](data []byte, valid func(T) bool) (items []T, skipped int, err error) {
	items = []T{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return items, 0, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return items, 0, err
	}
	for _, entry := range raw {
		var v T
		if err := json.Unmarshal(entry, &v); err != nil {
			skipped++
			continue
		}
		if valid != nil && !valid(v) {
			skipped++
			continue
		}
		items = append(items, v)
	}
	return items, skipped, nil
}

// FeaturedPublications returns the publications flagged featured, in order.
func FeaturedPublications(pubs []Publication) []Publication {
	return filterFeatured(pubs, func(p Publication) bool { return p.Featured })
}

// FeaturedProjects returns the projects flagged featured, in order.
func FeaturedProjects(projects []Project) []Project {
	return filterFeatured(projects, func(p Project) bool { return p.Featured })
}

// FeaturedAwards returns the awards flagged featured, in order.
func FeaturedAwards(awards []Award) []Award {
	return filterFeatured(awards, func(a Award) bool { return a.Featured })
}

// FeaturedGames returns the games flagged featured, in order.
func FeaturedGames(games []Game) []Game {
	return filterFeatured(games, func(g Game) bool { return g.Featured })
}

func filterFeatured[T any](items []T, featured func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if featured(it) {
			out = append(out, it)
		}
	}
	return out
}
