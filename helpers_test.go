package homepage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "a-b-c", Slugify("  a--b  c "))
	assert.Equal(t, "", Slugify("中文"))
	assert.Equal(t, "go-1-24", Slugify("Go 1.24"))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://jane.example", BuildURL("https://jane.example"))
	assert.Equal(t, "https://jane.example/projects/", BuildURL("https://jane.example", "projects"))
	assert.Equal(t, "https://jane.example/sub/awards/", BuildURL("https://jane.example/sub", "awards"))
}

func TestPersonJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Jane's Page", URL: "https://jane.example", Author: "Jane Doe", Description: "Researcher"}
	content := Content{
		Publications: []Publication{{Title: "Linked", Link: "https://example.org/p"}, {Title: "Unlinked"}},
		Projects:     []Project{{Name: "tool", URL: "https://github.com/o/tool"}, {Name: "site", URL: "https://example.org"}},
	}

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(PersonJsonLD(cfg, content)), &doc))

	assert.Equal(t, "ProfilePage", doc["@type"])
	person := doc["mainEntity"].(map[string]any)
	assert.Equal(t, "Jane Doe", person["name"])
	works := person["workExample"].([]any)
	require.Len(t, works, 1)
	assert.Equal(t, "Linked", works[0].(map[string]any)["name"])
	assert.Equal(t, []any{"https://github.com/o/tool"}, person["subjectOf"])
}

func TestWebsiteJsonLDEscapesForScript(t *testing.T) {
	ld := WebsiteJsonLD(SiteConfig{Name: "</script><b>", URL: "https://jane.example"})
	assert.NotContains(t, ld, "</script>")
	assert.Contains(t, ld, `\u003c/script\u003e`)
}
