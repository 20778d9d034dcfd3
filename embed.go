package homepage

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// site.js (reveal-on-scroll, nav highlighting, sidebar, preference toggles).
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
