package scraper

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"zameen_watcher/models"
)

var (
	priceRE = regexp.MustCompile(`(?i)\bPKR\s*[\d,]+(?:\.\d+)?(?:\s*(?:Thousand|Lac|Lakh|Crore))?\b`)
	bedsRE  = regexp.MustCompile(`(?i)\b(\d+)\s*(Beds?|Bedrooms?)\b`)
	bathsRE = regexp.MustCompile(`(?i)\b(\d+)\s*(Baths?|Bathrooms?)\b`)
	areaRE  = regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(Sq\.?\s*Yd\.?|Sq\.?\s*Ft\.?|Marla|Kanal)\b`)
)

// extractFallback scans the page's flattened text for price, bed, bath and
// area patterns. It runs when JSON-LD gave nothing usable. A pattern that
// does not match leaves its field empty; missing data is the normal case
// for a partially rendered page, not an error. Address is resolved
// separately by the cascade and merged in by the assembler.
func extractFallback(doc *goquery.Document, pageURL string) models.Listing {
	text := flattenText(doc.Selection)

	out := models.Listing{Link: pageURL}

	out.PriceText = priceRE.FindString(text)

	if m := bedsRE.FindStringSubmatch(text); m != nil {
		out.Beds = m[1]
	}
	if m := bathsRE.FindStringSubmatch(text); m != nil {
		out.Baths = m[1]
	}
	if m := areaRE.FindStringSubmatch(text); m != nil {
		out.Area = Clean(m[1])
		out.AreaUnit = Clean(m[2])
	}

	return out
}
