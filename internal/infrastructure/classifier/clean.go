package classifier

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Matches size/quantity patterns like "128 fl oz", "1 gallon", "16.9oz"
	sizePattern = regexp.MustCompile(
		`(?i)\b\d+\.?\d*\s*(?:fl\s*oz|oz|ml|liters?|l|gallons?|gal|lbs?|pounds?|kg|grams?|g|ct|count|pk|pack|ea|each|qt|quart|pt|pint)\b`,
	)
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// retailNoiseWords are pack-size marketing terms that add nothing to a
// classification prompt.
var retailNoiseWords = []string{
	"party size", "family size", "value pack", "bonus size",
	"club pack", "mega size", "snack size", "fun size",
	"share size", "king size", "travel size",
}

// cleanTitle strips retail packaging noise from a product title so the
// classifier sees the food, not the merchandising. Titles like
// "Acme Whole Vitamin D Milk, Gallon, 128 fl oz" reduce to the part that
// actually identifies the product.
func cleanTitle(title string) string {
	name := title

	// Size and packaging info usually trails the first comma.
	if idx := strings.Index(name, ","); idx > 0 {
		name = name[:idx]
	}

	name = sizePattern.ReplaceAllString(name, " ")

	nameLower := strings.ToLower(name)
	for _, noise := range retailNoiseWords {
		if idx := strings.Index(nameLower, noise); idx >= 0 {
			name = name[:idx] + name[idx+len(noise):]
			nameLower = strings.ToLower(name)
		}
	}

	name = multiSpacePattern.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return strings.TrimSpace(title)
	}
	return name
}
