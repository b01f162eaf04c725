package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBarcode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid UPC-A", "012345678905", "012345678905", false},
		{"valid EAN-8", "96385074", "96385074", false},
		{"strips hyphens", "0-12345-67890-5", "012345678905", false},
		{"strips spaces and letters", " 9638 5074 ", "96385074", false},
		{"too short after stripping", "12ab", "", true},
		{"eleven digits", "12345678901", "", true},
		{"thirteen digits", "1234567890123", "", true},
		{"empty", "", "", true},
		{"only junk", "abc-def", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBarcode(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBarcode)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
