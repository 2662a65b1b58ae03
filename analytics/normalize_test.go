package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{"lowercases", "Google", "direct", "google"},
		{"trims", "  linkedin  ", "direct", "linkedin"},
		{"blank falls back", "", "direct", "direct"},
		{"whitespace falls back", "   ", "direct", "direct"},
		{"fallback is lowercased too", "", "Direct", "direct"},
		{"already clean", "bing", "direct", "bing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.value, tt.fallback))
		})
	}
}
