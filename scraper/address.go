package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxAddressLen = 140

// The location line is usually a clickable <a> right under the page
// title, e.g. "Federal B Area - Block 5, Federal B Area, Karachi, Sindh".
const headingAdjacentSelector = `h1 + a, h1 ~ a[href*="/Karachi/"], h1 ~ a[href*="/Federal_B_Area/"]`

// Generic backups, tried in order when the positional heuristic fails.
var addressSelectors = []string{
	`a[href*="/Karachi/"]`,
	`a[href*="Federal_B_Area"]`,
	`span[aria-label="Location"]`,
	`div[aria-label="Location"]`,
	`[class*="location" i]`,
	`[class*="address" i]`,
}

// resolveAddress runs the three-tier address cascade: JSON-LD address,
// then the heading-adjacent link, then the generic selector candidates.
// The generic tier rejects candidates longer than 140 characters or
// containing "PKR", which a loose selector can pick up from price blocks.
// If nothing qualifies the address stays "".
func resolveAddress(doc *goquery.Document, metaAddress string) string {
	if addr := strings.TrimSpace(metaAddress); addr != "" {
		return addr
	}

	if el := doc.Find(headingAdjacentSelector).First(); el.Length() > 0 {
		if txt := flattenText(el); txt != "" {
			return txt
		}
	}

	for _, sel := range addressSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		txt := flattenText(el)
		if txt != "" && len(txt) <= maxAddressLen && !strings.Contains(txt, "PKR") {
			return txt
		}
	}

	return ""
}
