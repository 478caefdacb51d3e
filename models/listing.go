package models

// Listing is one rental listing extracted from a detail page. Every field
// is a string, including the nominally numeric ones: the source mixes
// formats ("3", "3 Beds", "PKR 45,000") and no coercion is attempted.
type Listing struct {
	PriceText string `json:"price_text"`
	Beds      string `json:"beds"`
	Baths     string `json:"baths"`
	Area      string `json:"area"`
	AreaUnit  string `json:"area_unit"`
	Address   string `json:"address"`
	Link      string `json:"link"`
}

// Empty reports whether all four core numeric fields are empty. An empty
// listing is still a valid record; it just means extraction found nothing.
func (l Listing) Empty() bool {
	return l.PriceText == "" && l.Beds == "" && l.Baths == "" && l.Area == ""
}
