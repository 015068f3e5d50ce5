package frontend

import "strings"

// Page is a top-level view.
type Page string

const (
	PageHome      Page = "home"
	PageSetup     Page = "setup"
	PageInterview Page = "interview"
	PageReport    Page = "report"
)

// RouteFromHash maps a location hash to a page. Only "#setup" is routable;
// every other hash lands on the home page.
func RouteFromHash(hash string) Page {
	if strings.TrimPrefix(hash, "#") == string(PageSetup) {
		return PageSetup
	}
	return PageHome
}

// Hash returns the location hash that selects p.
func (p Page) Hash() string {
	return "#" + string(p)
}
