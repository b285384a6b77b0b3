// Package priceutil parses retailer price strings in a locale-tolerant way.
package priceutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyTokens = regexp.MustCompile(`(?i)EUR|USD|GBP|HUF|Ft|[€$£¥₹]`)
	numericToken   = regexp.MustCompile(`[0-9][0-9.,]*`)
)

// Parse extracts a numeric price from strings like "$99.99", "99,99 EUR",
// "1.234,56" or "29 999 Ft". It strips currency symbols and codes, drops
// grouping separators and normalizes decimal commas, then parses the leading
// numeric token. Returns false when no positive price can be recovered.
func Parse(raw string) (float64, bool) {
	cleaned := stripWhitespace(raw)
	cleaned = currencyTokens.ReplaceAllString(cleaned, "")

	token := numericToken.FindString(cleaned)
	if token == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(normalizeSeparators(token), 64)
	if err != nil || price <= 0 {
		return 0, false
	}

	return price, true
}

// normalizeSeparators reduces a numeric token with arbitrary "." and ","
// usage to plain decimal-point notation.
//
// When both separators appear, the one appearing last is the decimal mark
// ("1.234,56" and "1,234.56" both become "1234.56"). A separator repeated
// more than once can only be a grouping mark. A single separator followed by
// exactly three digits is treated as a grouping mark ("1.234" -> 1234), which
// matches how retail prices are overwhelmingly formatted.
func normalizeSeparators(token string) string {
	token = strings.Trim(token, ".,")

	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return strings.ReplaceAll(token, ",", "")
		}
		token = strings.ReplaceAll(token, ".", "")
		return strings.Replace(token, ",", ".", 1)
	case lastComma >= 0:
		return normalizeSingle(token, ",", lastComma)
	case lastDot >= 0:
		return normalizeSingle(token, ".", lastDot)
	default:
		return token
	}
}

func normalizeSingle(token, sep string, last int) string {
	repeated := strings.Count(token, sep) > 1
	threeDigitTail := len(token)-last-1 == 3 && !strings.HasPrefix(token, "0"+sep)
	if repeated || threeDigitTail {
		return strings.ReplaceAll(token, sep, "")
	}
	return strings.ReplaceAll(token, sep, ".")
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, s)
}
