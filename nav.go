package homepage

// Section identifies one block of the homepage.
type Section string

const (
	SectionAbout        Section = "about"
	SectionPublications Section = "publications"
	SectionProjects     Section = "projects"
	SectionAwards       Section = "awards"
	SectionGames        Section = "games"
)

// Sections lists the sections in navigation order.
var Sections = []Section{SectionAbout, SectionPublications, SectionProjects, SectionAwards, SectionGames}

// ListingSections are the sections with a full listing page.
var ListingSections = []Section{SectionPublications, SectionProjects, SectionAwards, SectionGames}

var sectionLabels = map[Section][2]string{
	SectionAbout:        {"About", "关于"},
	SectionPublications: {"Publications", "论文"},
	SectionProjects:     {"Projects", "项目"},
	SectionAwards:       {"Awards", "荣誉"},
	SectionGames:        {"Games", "游戏"},
}

// Label returns the English and Chinese section names.
func (s Section) Label() (en, zh string) {
	l := sectionLabels[s]
	return l[0], l[1]
}

// ParseSection accepts only sections that have a listing page.
func ParseSection(s string) (Section, bool) {
	for _, sec := range ListingSections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// NavItem is one sidebar entry.
type NavItem struct {
	Section Section
	Href    string
	LabelEn string
	LabelZh string
	Active  bool
}

// HomeNav builds in-page anchors for the home page; "about" starts active
// and the client script moves the highlight while scrolling.
func HomeNav() []NavItem {
	items := make([]NavItem, 0, len(Sections))
	for _, s := range Sections {
		en, zh := s.Label()
		items = append(items, NavItem{
			Section: s,
			Href:    "#" + string(s),
			LabelEn: en,
			LabelZh: zh,
			Active:  s == SectionAbout,
		})
	}
	return items
}

// SectionNav builds links to the listing pages with current marked active.
func SectionNav(current Section) []NavItem {
	items := make([]NavItem, 0, len(Sections))
	for _, s := range Sections {
		en, zh := s.Label()
		href := "/" + string(s) + "/"
		if s == SectionAbout {
			href = "/#about"
		}
		items = append(items, NavItem{
			Section: s,
			Href:    href,
			LabelEn: en,
			LabelZh: zh,
			Active:  s == current,
		})
	}
	return items
}
