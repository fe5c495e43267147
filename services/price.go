package services

import (
	"regexp"
	"strconv"
	"strings"
)

// priceTokenRegexp matches a sterling price token like "£200,000" or "£200,000.00".
var priceTokenRegexp = regexp.MustCompile(`£[\d,]+(?:\.\d{2})?`)

// ExtractPrice pulls the first price token out of free text, e.g. a page
// heading like "Guide Price £200,000". Returns "" when no token is present.
func ExtractPrice(text string) string {
	return priceTokenRegexp.FindString(text)
}

// ParsePrice normalises a currency-formatted string to whole pounds.
// The currency symbol and grouping commas are stripped and any pence are
// truncated. Returns nil for empty or non-numeric input; never errors.
func ParsePrice(text string) *int64 {
	cleaned := strings.ReplaceAll(text, "£", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	if dot := strings.IndexByte(cleaned, '.'); dot >= 0 {
		cleaned = cleaned[:dot]
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
