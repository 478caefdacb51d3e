package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Base is the site origin relative hrefs are resolved against.
const Base = "https://www.zameen.com"

// The trailing -4 is Zameen's listing-type marker; agency, project and
// navigation links never carry it.
var propertyRE = regexp.MustCompile(`^https://www\.zameen\.com/Property/.+-\d+-\d+-4\.html$`)

var pageSegmentRE = regexp.MustCompile(`-\d+-\d+\.html`)

// NormalizeLink resolves a possibly relative href against the site origin.
// Absolute URLs pass through unchanged; empty input yields "".
func NormalizeLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	base, _ := url.Parse(Base)
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// IsRealListing reports whether url points at a listing detail page.
func IsRealListing(u string) bool {
	return propertyRE.MatchString(u)
}

// BuildPageURLs derives results-page URLs 1..maxPages from the first-page
// URL by rewriting its -<category>-<page>.html segment. The 12 is the
// fixed category code for this search and must not change.
func BuildPageURLs(firstPageURL string, maxPages int) []string {
	urls := make([]string, 0, maxPages)
	for page := 1; page <= maxPages; page++ {
		urls = append(urls, pageSegmentRE.ReplaceAllString(firstPageURL, fmt.Sprintf("-12-%d.html", page)))
	}
	return urls
}

// CollectListingLinks pulls every href from a rendered results page,
// normalizes it and keeps the ones that classify as listing detail pages.
// Order is preserved and duplicates dropped.
func CollectListingLinks(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u := NormalizeLink(href)
		if !IsRealListing(u) {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		links = append(links, u)
	})
	return links
}
