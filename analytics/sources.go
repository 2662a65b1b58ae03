package analytics

import (
	"sort"

	"github.com/nordbooks/leadtrack/models"
)

// SourceRow aggregates one traffic source across the window.
type SourceRow struct {
	Source     string  `json:"source"`
	LPViews    int     `json:"lpViews"`
	Leads      int     `json:"leads"`
	HighIntent int     `json:"highIntent"`
	Spend      float64 `json:"spend"`
}

// ComputeSourceBreakdown groups events, leads and spend by normalized
// source.
func ComputeSourceBreakdown(events []models.Event, leads []models.Lead, spend []models.SpendRecord) []SourceRow {
	rows := make(map[string]*SourceRow)

	row := func(source string) *SourceRow {
		r, ok := rows[source]
		if !ok {
			r = &SourceRow{Source: source}
			rows[source] = r
		}
		return r
	}

	for _, event := range events {
		if event.Type == models.EventLPView {
			row(NormalizeKey(event.UTMSource, FallbackSource)).LPViews++
		}
	}

	for _, lead := range leads {
		r := row(NormalizeKey(lead.UTMSource, FallbackSource))
		r.Leads++
		if HighIntent(lead) {
			r.HighIntent++
		}
	}

	for _, record := range spend {
		row(NormalizeKey(record.Source, FallbackSource)).Spend += record.Amount
	}

	out := make([]SourceRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Leads != out[j].Leads {
			return out[i].Leads > out[j].Leads
		}
		if out[i].LPViews != out[j].LPViews {
			return out[i].LPViews > out[j].LPViews
		}
		return out[i].Source < out[j].Source
	})

	return out
}
