package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/platform/priceutil"
)

// applyMetaTags harvests Open Graph and Twitter card style meta tags into
// still-empty fields. Tags are matched on either the property or the name
// attribute, so attribute naming and ordering conventions of the page don't
// matter. The document title is the last resort for the product name.
func applyMetaTags(d *document, p *models.ExtractedProduct) {
	if d.tree == nil {
		return
	}

	fillString(&p.Name, cleanName(metaContent(d.tree, "og:title", "twitter:title", "title")), validName)

	if price, ok := priceutil.Parse(metaContent(d.tree, "product:price:amount", "og:price:amount")); ok {
		fillPrice(&p.Price, price)
	}

	fillString(&p.Brand, metaContent(d.tree, "product:brand", "og:brand"), validBrand)
	fillString(&p.Color, metaContent(d.tree, "product:color", "og:color"), validColor)

	if p.Name == "" {
		fillString(&p.Name, cleanName(d.tree.Find("title").First().Text()), validName)
	}

	if p.Color == "" {
		description := metaContent(d.tree, "og:description", "description", "twitter:description")
		fillString(&p.Color, colorFromText(description), validColor)
	}
}

// metaContent returns the first non-empty content attribute among meta tags
// keyed by any of the given property/name values, in key priority order.
func metaContent(tree *goquery.Document, keys ...string) string {
	for _, key := range keys {
		selector := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)

		var content string
		tree.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v := strings.TrimSpace(s.AttrOr("content", "")); v != "" {
				content = v
				return false
			}
			return true
		})
		if content != "" {
			return content
		}
	}
	return ""
}
