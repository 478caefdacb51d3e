package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaFields holds whatever the JSON-LD blocks on a detail page yielded.
// Any field may be empty; Sufficient decides whether the page-level
// fallback extractor runs instead.
type metaFields struct {
	Price    string
	Currency string
	Beds     string
	Baths    string
	Area     string
	AreaUnit string
	URL      string
	Address  string
}

// Sufficient reports whether at least one core numeric field came out of
// the metadata. When false the assembler switches to text-pattern
// extraction for the whole page.
func (m metaFields) Sufficient() bool {
	return m.Price != "" || m.Beds != "" || m.Baths != "" || m.Area != ""
}

// extractJSONLD scans every application/ld+json block in the document.
// Malformed blocks are skipped; across blocks and array items, later
// values overwrite earlier ones for any field they provide.
func extractJSONLD(doc *goquery.Document) metaFields {
	var out metaFields

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}

		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return
		}

		items, ok := parsed.([]any)
		if !ok {
			items = []any{parsed}
		}
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			mergeJSONLDItem(&out, obj)
		}
	})

	return out
}

func mergeJSONLDItem(out *metaFields, obj map[string]any) {
	if offers, ok := obj["offers"].(map[string]any); ok {
		var specPrice any
		if spec, ok := offers["priceSpecification"].(map[string]any); ok {
			specPrice = spec["price"]
		}
		if price := FirstNonEmpty(offers["price"], specPrice); price != "" {
			out.Price = price
		}
		if cur := FirstNonEmpty(offers["priceCurrency"]); cur != "" {
			out.Currency = cur
		}
	}

	if beds := FirstNonEmpty(obj["numberOfBedrooms"], obj["numberOfRooms"]); beds != "" {
		out.Beds = beds
	}
	if baths := FirstNonEmpty(obj["numberOfBathroomsTotal"]); baths != "" {
		out.Baths = baths
	}

	if floor, ok := obj["floorSize"].(map[string]any); ok {
		if area := FirstNonEmpty(floor["value"]); area != "" {
			out.Area = area
		}
		if unit := FirstNonEmpty(floor["unitText"]); unit != "" {
			out.AreaUnit = unit
		}
	}

	if u := FirstNonEmpty(obj["url"]); u != "" {
		out.URL = u
	}

	// address is either a PostalAddress object or a bare string
	switch addr := obj["address"].(type) {
	case map[string]any:
		if a := FirstNonEmpty(addr["streetAddress"], addr["name"], addr["addressLocality"]); a != "" {
			out.Address = a
		}
	case string:
		if a := strings.TrimSpace(addr); a != "" {
			out.Address = a
		}
	}
}
