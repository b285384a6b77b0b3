// Package extractor recovers structured product attributes from untrusted
// retailer HTML. It runs a cascade of strategies ordered by decreasing trust:
// embedded JSON-LD product data, Open Graph / Twitter meta tags, raw-text
// fallback patterns and category-specific patterns. Later strategies only fill
// fields left empty by earlier ones, so weak signals can supplement strong
// ones without corrupting them.
package extractor

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
)

// blockPhrases mark bot-check and waiting-room pages. A document containing
// any of them is unusable and yields an empty result rather than garbage
// fields scraped out of the interstitial markup.
var blockPhrases = []string{
	"checking your browser",
	"please wait",
	"waiting room",
	"you are in a queue",
	"verify you are human",
	"are you a robot",
	"access denied",
	"captcha",
}

// Extract runs the extraction cascade over one HTML document. It never fails:
// malformed input degrades to an empty or partially filled result.
func Extract(htmlText string, category models.Category) models.ExtractedProduct {
	var product models.ExtractedProduct

	if isBlockPage(htmlText) {
		return product
	}

	doc := newDocument(htmlText)

	applyStructuredData(doc, &product)
	applyMetaTags(doc, &product)
	applyFallbackPatterns(doc, &product)
	applyCategoryPatterns(doc, &product, category)

	product.SearchQuery = buildSearchQuery(product.Brand, product.Name, product.Model, product.Color)

	return product
}

// document is the shared input of all strategies: the raw HTML text plus a
// parsed tree when parsing succeeded. Strategies must tolerate a nil tree.
type document struct {
	raw  string
	tree *goquery.Document
}

func newDocument(htmlText string) *document {
	d := document{raw: htmlText}
	if tree, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText)); err == nil {
		d.tree = tree
	}
	return &d
}

func isBlockPage(htmlText string) bool {
	lowered := strings.ToLower(htmlText)
	for _, phrase := range blockPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// fillString sets *dst to value when *dst is still empty and value passes
// validation. First writer wins: strategies run in order of decreasing trust.
func fillString(dst *string, value string, valid func(string) bool) {
	if *dst != "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" || !valid(value) {
		return
	}
	*dst = value
}

func fillPrice(dst *float64, value float64) {
	if *dst == 0 && value > 0 {
		*dst = value
	}
}

// Field bounds reject clearly wrong matches, not merely unusual ones.
func validName(v string) bool  { return len(v) <= 200 }
func validBrand(v string) bool { return len(v) >= 2 && len(v) <= 50 }
func validModel(v string) bool { return len(v) <= 40 }
func validSize(v string) bool  { return len(v) <= 20 }

func validStorage(v string) bool { return len(v) <= 10 }

func validMaterial(v string) bool { return len(v) >= 2 && len(v) <= 60 }

// validColor rejects anything longer than a color name or containing digits.
func validColor(v string) bool {
	if len(v) > 40 {
		return false
	}
	return !strings.ContainsFunc(v, unicode.IsDigit)
}

// priceInBounds is the sanity range for prices scraped from raw text.
func priceInBounds(v float64) bool {
	return v > 0.01 && v < 100000
}
