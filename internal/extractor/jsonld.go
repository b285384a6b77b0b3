package extractor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/accadaniel/PriceSpy/internal/platform/models"
	"github.com/accadaniel/PriceSpy/internal/platform/priceutil"
)

// productTypes are the JSON-LD @type values treated as product descriptors.
var productTypes = map[string]bool{
	"Product":           true,
	"IndividualProduct": true,
	"ProductModel":      true,
}

// applyStructuredData locates the first JSON-LD product object in the
// document and maps its fields onto still-empty result fields.
func applyStructuredData(d *document, p *models.ExtractedProduct) {
	obj := locateProduct(d)
	if obj == nil {
		return
	}

	fillString(&p.Name, cleanName(scalar(obj["name"])), validName)
	fillString(&p.Brand, scalarOrName(obj["brand"]), validBrand)
	fillPrice(&p.Price, offerPrice(obj))
	fillString(&p.Color, scalar(obj["color"]), validColor)
	fillString(&p.Model, firstScalar(obj, "model", "sku", "mpn"), validModel)
	fillString(&p.Material, materialValue(obj["material"]), validMaterial)
	fillString(&p.Size, scalarOrName(obj["size"]), validSize)

	if p.Color == "" {
		fillString(&p.Color, colorFromText(scalar(obj["description"])), validColor)
	}
}

// locateProduct scans every ld+json script block, skipping blocks that fail
// to parse, and returns the first object whose @type is a product type.
func locateProduct(d *document) map[string]any {
	if d.tree == nil {
		return nil
	}

	var found map[string]any
	d.tree.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var root any
		if err := json.Unmarshal([]byte(s.Text()), &root); err != nil {
			return true
		}
		for _, obj := range flattenObjects(root) {
			if isProductType(obj["@type"]) {
				found = obj
				return false
			}
		}
		return true
	})

	return found
}

// flattenObjects unwraps top-level arrays and @graph containers into a flat
// list of candidate objects.
func flattenObjects(root any) []map[string]any {
	switch v := root.(type) {
	case []any:
		var out []map[string]any
		for _, item := range v {
			out = append(out, flattenObjects(item)...)
		}
		return out
	case map[string]any:
		out := []map[string]any{v}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				out = append(out, flattenObjects(item)...)
			}
		}
		return out
	default:
		return nil
	}
}

// isProductType accepts @type as a plain string or as a list, in which case
// the first element decides.
func isProductType(value any) bool {
	switch t := value.(type) {
	case string:
		return productTypes[t]
	case []any:
		if len(t) == 0 {
			return false
		}
		s, ok := t[0].(string)
		return ok && productTypes[s]
	default:
		return false
	}
}

// offerPrice reads offers[0].price, falling back to lowPrice for aggregate
// offers. Offers may be a single object or a list.
func offerPrice(obj map[string]any) float64 {
	offer := firstObject(obj["offers"])
	if offer == nil {
		return 0
	}
	if price, ok := priceValue(offer["price"]); ok {
		return price
	}
	if price, ok := priceValue(offer["lowPrice"]); ok {
		return price
	}
	return 0
}

// priceValue parses a JSON price that may be numeric or a formatted string
// with decimal commas.
func priceValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, v > 0
	case string:
		return priceutil.Parse(v)
	default:
		return 0, false
	}
}

func firstObject(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if obj, ok := v[0].(map[string]any); ok {
				return obj
			}
		}
	}
	return nil
}

// scalar renders a JSON string or number as text.
func scalar(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// scalarOrName handles values that may be a plain scalar or an object
// carrying a name, like {"@type":"Brand","name":"Acme"}.
func scalarOrName(value any) string {
	if obj, ok := value.(map[string]any); ok {
		return scalar(obj["name"])
	}
	return scalar(value)
}

func firstScalar(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := scalarOrName(obj[key]); v != "" {
			return v
		}
	}
	return ""
}

// materialValue joins list-valued materials with ", ".
func materialValue(value any) string {
	if items, ok := value.([]any); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if v := scalarOrName(item); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, ", ")
	}
	return scalarOrName(value)
}

var knownColors = []string{
	"black", "white", "red", "blue", "green", "yellow", "orange", "purple",
	"pink", "brown", "gray", "grey", "silver", "gold", "beige", "navy",
	"teal", "cyan", "magenta", "maroon", "olive", "turquoise", "ivory",
	"charcoal", "graphite", "burgundy", "khaki", "cream", "bronze", "copper",
	"lavender", "mint",
}

var colorPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(knownColors, "|") + `)\b`)

// colorFromText finds the first known color name in free text and returns it
// title-cased.
func colorFromText(text string) string {
	match := colorPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.ToUpper(match[:1]) + strings.ToLower(match[1:])
}
