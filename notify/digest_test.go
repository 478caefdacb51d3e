package notify

import (
	"testing"

	"zameen_watcher/models"
)

func TestBuildDigest(t *testing.T) {
	listings := []models.Listing{
		{
			PriceText: "PKR 45000",
			Beds:      "3",
			Baths:     "2",
			Area:      "120",
			AreaUnit:  "Sq. Yd.",
			Address:   "Block 5, Federal B Area",
			Link:      "https://www.zameen.com/Property/a-1-2-4.html",
		},
		{
			PriceText: "PKR 30,000",
			Beds:      "2",
			Baths:     "1",
			Area:      "80",
			AreaUnit:  "Sq. Yd.",
			Link:      "https://www.zameen.com/Property/b-3-4-4.html",
		},
	}

	want := "New Zameen rental listings found: 2\n" +
		"\n" +
		"1) PKR 45000 | Block 5, Federal B Area\n" +
		"   3 bed | 2 bath | 120 Sq. Yd.\n" +
		"   https://www.zameen.com/Property/a-1-2-4.html\n" +
		"\n" +
		"2) PKR 30,000\n" +
		"   2 bed | 1 bath | 80 Sq. Yd.\n" +
		"   https://www.zameen.com/Property/b-3-4-4.html\n"

	if got := BuildDigest(listings); got != want {
		t.Fatalf("digest mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildDigest_Empty(t *testing.T) {
	want := "New Zameen rental listings found: 0\n"
	if got := BuildDigest(nil); got != want {
		t.Fatalf("empty digest = %q, want %q", got, want)
	}
}
