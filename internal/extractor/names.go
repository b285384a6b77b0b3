package extractor

import (
	"regexp"
	"strings"
)

// storeWords flag a trailing title segment as store branding rather than part
// of the product name.
var storeWords = []string{
	"amazon", "ebay", "walmart", "target", "aliexpress", "etsy", "newegg",
	"costco", "best buy", "official", "store", "shop", "online", "buy",
	"sale", "free shipping",
}

// nameSeparator matches the separators retailers use to append branding to a
// page title. A hyphen or dash must be surrounded by whitespace so model
// numbers like "AW-100" survive; a colon or pipe needs only trailing space.
var nameSeparator = regexp.MustCompile(`\s+[-–—:|]\s+|[:|]\s+`)

// cleanName strips store branding suffixes from a captured product name.
// Everything after a literal "|" is always dropped; a segment after the last
// remaining separator is dropped only when it reads like store branding.
func cleanName(name string) string {
	name = strings.TrimSpace(name)

	if i := strings.Index(name, "|"); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}

	for {
		stripped, changed := stripStoreSuffix(name)
		if !changed {
			break
		}
		name = stripped
	}

	return strings.Join(strings.Fields(name), " ")
}

func stripStoreSuffix(name string) (string, bool) {
	locs := nameSeparator.FindAllStringIndex(name, -1)
	if len(locs) == 0 {
		return name, false
	}

	last := locs[len(locs)-1]
	suffix := strings.ToLower(strings.TrimSpace(name[last[1]:]))
	if suffix == "" {
		return strings.TrimSpace(name[:last[0]]), true
	}

	for _, word := range storeWords {
		if strings.Contains(suffix, word) {
			return strings.TrimSpace(name[:last[0]]), true
		}
	}

	return name, false
}
