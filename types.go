package homepage

// Publication is a paper entry from publications.json.
type Publication struct {
	Title      string `json:"title"`
	Authors    string `json:"authors"`
	Venue      string `json:"venue"`
	VenueZh    string `json:"venueZh"`
	Link       string `json:"link"`
	Image      string `json:"image"`
	ThumbLabel string `json:"thumbLabel"`
	Level      string `json:"level"`      // badge CSS class, e.g. "ccf-a"
	LevelLabel string `json:"levelLabel"` // badge text
	Featured   bool   `json:"featured"`
}

// Project is a software project entry from projects.json.
type Project struct {
	Name          string   `json:"name"`
	Desc          string   `json:"desc"`
	DescZh        string   `json:"descZh"`
	Detail        string   `json:"detail"`
	DetailZh      string   `json:"detailZh"`
	Role          string   `json:"role"`
	RoleZh        string   `json:"roleZh"`
	Status        string   `json:"status"`
	StatusLabel   string   `json:"statusLabel"`
	StatusLabelZh string   `json:"statusLabelZh"`
	URL           string   `json:"url"`
	Image         string   `json:"image"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured"`
}

// Award is an entry from awards.json.
type Award struct {
	Title          string `json:"title"`
	TitleZh        string `json:"titleZh"`
	Result         string `json:"result"`
	ResultZh       string `json:"resultZh"`
	Icon           string `json:"icon"`
	Official       string `json:"official"`
	OfficialZh     string `json:"officialZh"`
	Contribution   string `json:"contribution"`
	ContributionZh string `json:"contributionZh"`
	Featured       bool   `json:"featured"`
}

// Game is an entry from games.json.
type Game struct {
	Name     string     `json:"name"`
	NameZh   string     `json:"nameZh"`
	Role     string     `json:"role"`
	RoleZh   string     `json:"roleZh"`
	Desc     string     `json:"desc"`
	DescZh   string     `json:"descZh"`
	Detail   string     `json:"detail"`
	DetailZh string     `json:"detailZh"`
	Video    string     `json:"video"` // embeddable player URL
	Image    string     `json:"image"`
	Awards   string     `json:"awards"`
	AwardsZh string     `json:"awardsZh"`
	Tags     []string   `json:"tags"`
	Links    []GameLink `json:"links"`
	Featured bool       `json:"featured"`
}

// GameLink is an external link shown under a game's detail card.
type GameLink struct {
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Content holds every collection loaded for one page view.
type Content struct {
	Publications []Publication
	Projects     []Project
	Awards       []Award
	Games        []Game
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
	JSONLD      string
}

// SiteInfo is the public subset of SiteConfig handed to templates.
type SiteInfo struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Page is the data every full page layout needs.
type Page struct {
	Site      SiteInfo
	Meta      PageMeta
	Prefs     Preferences
	Nav       []NavItem
	CSRFToken string
}

// HomePage is the landing page: featured records of every collection.
type HomePage struct {
	Page
	Publications     []Publication
	PublicationTotal int
	Projects         []Project
	Awards           []Award
	Games            []Game
	Counters         Counters
}

// SectionPage is the full listing of a single section.
type SectionPage struct {
	Page
	Section  Section
	Content  Content
	Counters Counters
}
