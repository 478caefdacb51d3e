package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Clean collapses runs of whitespace to a single space and trims the ends.
func Clean(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// flattenText returns the cleaned visible text of sel with a space
// between adjacent text nodes. Minified markup carries no whitespace
// between sibling elements, so plain Text() would glue their words
// (and digits) together.
func flattenText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return Clean(strings.Join(parts, " "))
}

// FirstNonEmpty returns the cleaned form of the first candidate that is
// non-nil and non-empty after cleaning. Numeric candidates are stringified
// directly. Returns "" if nothing qualifies.
func FirstNonEmpty(vals ...any) string {
	for _, v := range vals {
		switch x := v.(type) {
		case nil:
			continue
		case string:
			if c := Clean(x); c != "" {
				return c
			}
		case int:
			return strconv.Itoa(x)
		case int64:
			return strconv.FormatInt(x, 10)
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
	}
	return ""
}
