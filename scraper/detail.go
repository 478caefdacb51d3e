package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"zameen_watcher/models"
)

// ParseDetailPage turns one rendered detail page into a Listing. JSON-LD
// is the primary source; the address cascade runs either way. When the
// metadata yields none of the four core numeric fields the whole page
// falls back to text-pattern extraction — the switch is page-level, a
// partial metadata hit never triggers per-field backfilling.
func ParseDetailPage(html, pageURL string) (models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Listing{}, fmt.Errorf("parse html: %w", err)
	}

	meta := extractJSONLD(doc)
	address := resolveAddress(doc, meta.Address)

	if !meta.Sufficient() {
		listing := extractFallback(doc, pageURL)
		listing.Address = address
		return listing, nil
	}

	priceText := ""
	switch {
	case meta.Currency != "" && meta.Price != "":
		priceText = meta.Currency + " " + meta.Price
	case meta.Price != "":
		priceText = meta.Price
	}

	return models.Listing{
		PriceText: priceText,
		Beds:      meta.Beds,
		Baths:     meta.Baths,
		Area:      meta.Area,
		AreaUnit:  meta.AreaUnit,
		Address:   address,
		Link:      NormalizeLink(FirstNonEmpty(meta.URL, pageURL)),
	}, nil
}
