package extractor

import (
	"strings"
)

// buildSearchQuery derives a shopping search query from extracted attributes:
// brand first, then the name with any leading brand occurrence removed, then
// model and color when they don't already appear in the query. The derivation
// is deterministic; empty attributes are skipped.
func buildSearchQuery(brand, name, model, color string) string {
	query := strings.TrimSpace(brand)
	query = appendPart(query, stripLeadingBrand(name, brand))

	if model != "" && !containsFold(query, model) {
		query = appendPart(query, model)
	}
	if color != "" && !containsFold(query, color) {
		query = appendPart(query, color)
	}

	return query
}

// stripLeadingBrand removes a case-insensitive brand prefix from the name so
// "Acme" + "Acme Widget Pro" doesn't repeat the brand.
func stripLeadingBrand(name, brand string) string {
	name = strings.TrimSpace(name)
	if brand != "" && len(name) >= len(brand) && strings.EqualFold(name[:len(brand)], brand) {
		name = name[len(brand):]
	}
	return strings.Join(strings.Fields(name), " ")
}

func appendPart(query, part string) string {
	if part == "" {
		return query
	}
	if query == "" {
		return part
	}
	return query + " " + part
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
