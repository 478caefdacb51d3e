package notify

import (
	"fmt"
	"strings"

	"zameen_watcher/models"
)

// BuildDigest renders the plain-text email body for a batch of new
// listings: a count header, then three lines per listing (price/address,
// bed/bath/area, link) separated by blanks.
func BuildDigest(listings []models.Listing) string {
	lines := []string{
		fmt.Sprintf("New Zameen rental listings found: %d", len(listings)),
		"",
	}

	for i, l := range listings {
		if l.Address != "" {
			lines = append(lines, fmt.Sprintf("%d) %s | %s", i+1, l.PriceText, l.Address))
		} else {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, l.PriceText))
		}
		lines = append(lines, fmt.Sprintf("   %s bed | %s bath | %s %s", l.Beds, l.Baths, l.Area, l.AreaUnit))
		lines = append(lines, fmt.Sprintf("   %s", l.Link))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
