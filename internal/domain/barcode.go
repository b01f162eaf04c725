package domain

import "regexp"

// Package-level compiled regex pattern for performance
var nonDigitPattern = regexp.MustCompile(`\D+`)

// NormalizeBarcode strips all non-digit characters from a raw barcode and
// validates the result. Valid barcodes are exactly 8 (EAN-8) or 12 (UPC-A)
// digits. Only barcodes that pass this check may reach the store, the remote
// lookup client, or the classifier.
func NormalizeBarcode(raw string) (string, error) {
	cleaned := nonDigitPattern.ReplaceAllString(raw, "")
	if l := len(cleaned); l != 8 && l != 12 {
		return "", ErrInvalidBarcode
	}
	return cleaned, nil
}
