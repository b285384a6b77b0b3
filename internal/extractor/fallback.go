package extractor

import (
	"regexp"
	"strings"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/platform/priceutil"
)

// fallbackRule pairs a raw-text pattern with the assignment of its first
// capture group. Rules run in a fixed order over the whole document; each
// match is bounds-checked before acceptance.
type fallbackRule struct {
	pattern *regexp.Regexp
	apply   func(p *models.ExtractedProduct, match string)
}

var fallbackRules = []fallbackRule{
	{
		pattern: regexp.MustCompile(`"brand"\s*:\s*\{[^{}]*"name"\s*:\s*"([^"]+)"`),
		apply:   fallbackBrand,
	},
	{
		pattern: regexp.MustCompile(`"brand"\s*:\s*"([^"]+)"`),
		apply:   fallbackBrand,
	},
	{
		pattern: regexp.MustCompile(`"(?:price|lowPrice)"\s*:\s*"?([0-9][0-9 .,]*)`),
		apply:   fallbackPrice,
	},
	{
		pattern: regexp.MustCompile(`itemprop="price"[^>]*content="([^"]+)"`),
		apply:   fallbackPrice,
	},
	{
		pattern: regexp.MustCompile(`content="([^"]+)"[^>]*itemprop="price"`),
		apply:   fallbackPrice,
	},
	{
		pattern: regexp.MustCompile(`"color"\s*:\s*"([^"]+)"`),
		apply:   fallbackColor,
	},
	{
		pattern: regexp.MustCompile(`(?i)\bColou?r\s*:\s*([A-Za-z]{3,25}(?: [A-Za-z]{2,25})?)`),
		apply:   fallbackColor,
	},
}

// applyFallbackPatterns runs the fixed pattern bank against the raw document.
func applyFallbackPatterns(d *document, p *models.ExtractedProduct) {
	for _, rule := range fallbackRules {
		if m := rule.pattern.FindStringSubmatch(d.raw); len(m) > 1 {
			rule.apply(p, strings.TrimSpace(m[1]))
		}
	}
}

func fallbackBrand(p *models.ExtractedProduct, match string) {
	fillString(&p.Brand, match, validBrand)
}

func fallbackPrice(p *models.ExtractedProduct, match string) {
	if price, ok := priceutil.Parse(match); ok && priceInBounds(price) {
		fillPrice(&p.Price, price)
	}
}

func fallbackColor(p *models.ExtractedProduct, match string) {
	fillString(&p.Color, match, validColor)
}
