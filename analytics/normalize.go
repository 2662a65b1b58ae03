// Package analytics computes the dashboard aggregates: funnel counts,
// campaign performance, source breakdown, lead quality distributions and
// response-speed stats. Everything here is a pure function over slices read
// from the store, which keeps the aggregations trivially testable.
package analytics

import "strings"

// NormalizeKey canonicalizes an attribution value for use as a grouping key:
// trimmed, lowercased, with fallback substituted for blank input.
func NormalizeKey(value, fallback string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = fallback
	}
	return strings.ToLower(v)
}

// Grouping-key fallbacks for the attribution dimensions.
const (
	FallbackSource      = "direct"
	FallbackCampaign    = "none"
	FallbackLandingPage = "/"
)
