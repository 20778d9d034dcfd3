package homepage

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Lang is the display language preference.
type Lang string

const (
	LangEn Lang = "en"
	LangZh Lang = "zh"
)

const prefsSessionName = "homepage_prefs"

// Preferences are the two per-visitor flags kept in the session cookie.
type Preferences struct {
	Theme Theme `json:"theme"`
	Lang  Lang  `json:"lang"`
}

// ParseTheme validates a theme value.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// ParseLang validates a language value.
func ParseLang(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case LangEn:
		return LangEn, true
	case LangZh:
		return LangZh, true
	}
	return "", false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other language.
func (l Lang) Toggle() Lang {
	if l == LangEn {
		return LangZh
	}
	return LangEn
}

// ThemeIcon is the Font Awesome icon shown on the theme button: the sun
// switches back to light, the moon to dark.
func (t Theme) ThemeIcon() string {
	if t == ThemeDark {
		return "fa-sun"
	}
	return "fa-moon"
}

// loadPreferences reads the visitor's preferences, falling back to defaults
// for anything missing or unrecognized.
func (a *App) loadPreferences(c echo.Context) Preferences {
	prefs := Preferences{Theme: ThemeLight, Lang: a.Config.defaultLang()}
	sess, err := session.Get(prefsSessionName, c)
	if err != nil || sess == nil {
		return prefs
	}
	if s, ok := sess.Values["theme"].(string); ok {
		if t, ok := ParseTheme(s); ok {
			prefs.Theme = t
		}
	}
	if s, ok := sess.Values["lang"].(string); ok {
		if l, ok := ParseLang(s); ok {
			prefs.Lang = l
		}
	}
	return prefs
}

// savePreferences writes prefs to the session cookie. A cookie that no
// longer decodes, e.g. after the session secret changed, is replaced.
func savePreferences(c echo.Context, prefs Preferences) error {
	sess, err := session.Get(prefsSessionName, c)
	if sess == nil {
		return err
	}
	if err != nil {
		c.Logger().Warnf("homepage: discarding unreadable preferences cookie: %v", err)
	}
	sess.Values["theme"] = string(prefs.Theme)
	sess.Values["lang"] = string(prefs.Lang)
	return sess.Save(c.Request(), c.Response())
}

func (a *App) handleThemePref(c echo.Context) error {
	prefs := a.loadPreferences(c)
	if t, ok := ParseTheme(c.FormValue("value")); ok {
		prefs.Theme = t
	} else {
		prefs.Theme = prefs.Theme.Toggle()
	}
	return a.respondPreferences(c, prefs)
}

func (a *App) handleLangPref(c echo.Context) error {
	prefs := a.loadPreferences(c)
	if l, ok := ParseLang(c.FormValue("value")); ok {
		prefs.Lang = l
	} else {
		prefs.Lang = prefs.Lang.Toggle()
	}
	return a.respondPreferences(c, prefs)
}

func (a *App) respondPreferences(c echo.Context, prefs Preferences) error {
	if err := savePreferences(c, prefs); err != nil {
		return err
	}
	req := c.Request()
	if req.Header.Get("HX-Request") == "true" || strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return c.JSON(http.StatusOK, prefs)
	}
	return c.Redirect(http.StatusSeeOther, backPath(req))
}

// backPath returns the path of a same-site referer, or "/".
func backPath(req *http.Request) string {
	ref := req.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != req.Host) {
		return "/"
	}
	if u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
