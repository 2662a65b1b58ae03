package analytics

import (
	"math"
	"sort"

	"github.com/nordbooks/leadtrack/models"
)

// DistEntry is one value of a categorical distribution.
type DistEntry struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// QualityReport holds the categorical distributions over the leads in the
// window.
type QualityReport struct {
	Urgency   []DistEntry `json:"urgency"`
	Challenge []DistEntry `json:"challenge"`
	Revenue   []DistEntry `json:"revenue"`
}

// ComputeQuality builds urgency, challenge and revenue distributions.
// Percentages are rounded to the nearest integer; the denominator is floored
// at 1 so a zero-lead window reports 0% everywhere instead of erroring.
func ComputeQuality(leads []models.Lead) QualityReport {
	urgency := make(map[string]int)
	challenge := make(map[string]int)
	revenue := make(map[string]int)

	for _, lead := range leads {
		urgency[lead.Urgency]++
		challenge[lead.Challenge]++
		revenue[lead.Revenue]++
	}

	total := len(leads)
	if total < 1 {
		total = 1
	}

	return QualityReport{
		Urgency:   distribution(urgency, total),
		Challenge: distribution(challenge, total),
		Revenue:   distribution(revenue, total),
	}
}

func distribution(counts map[string]int, total int) []DistEntry {
	out := make([]DistEntry, 0, len(counts))
	for value, count := range counts {
		out = append(out, DistEntry{
			Value:      value,
			Count:      count,
			Percentage: int(math.Round(float64(count) * 100 / float64(total))),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})

	return out
}
