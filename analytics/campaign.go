package analytics

import (
	"sort"

	"github.com/nordbooks/leadtrack/models"
)

// CampaignRow is one row of the campaign performance table, keyed by the
// normalized (source, campaign, landing page) triple.
type CampaignRow struct {
	Source      string `json:"source"`
	Campaign    string `json:"campaign"`
	LandingPage string `json:"landingPage"`

	// Top-of-funnel counters from events
	LPViews       int `json:"lpViews"`
	CTAClicks     int `json:"ctaClicks"`
	FormStarts    int `json:"formStarts"`
	CalendarOpens int `json:"calendarOpens"`
	Conversions   int `json:"conversions"`

	// Lead-derived counters
	FormSubmits     int `json:"formSubmits"`
	HighIntentLeads int `json:"highIntentLeads"`
	CallsBooked     int `json:"callsBooked"`
	ClosedWon       int `json:"closedWon"`

	// Spend is looked up by (source, campaign) only: a campaign spanning
	// several landing pages shows the same undivided total on each row.
	Spend float64 `json:"spend"`
}

type campaignKey struct {
	source      string
	campaign    string
	landingPage string
}

// HighIntent reports whether a lead matches the fixed two-condition
// heuristic: pressing timeline and not in the lowest revenue band.
func HighIntent(lead models.Lead) bool {
	urgent := lead.Urgency == models.UrgencyUrgent || lead.Urgency == models.UrgencySoon
	return urgent && lead.Revenue != models.RevenueBandLowest
}

// ComputeCampaignPerformance joins events, leads and spend into per-campaign
// rows. Rows are created lazily by whichever pass sees the key first.
func ComputeCampaignPerformance(events []models.Event, leads []models.Lead, spend []models.SpendRecord) []CampaignRow {
	rows := make(map[campaignKey]*CampaignRow)

	row := func(key campaignKey) *CampaignRow {
		r, ok := rows[key]
		if !ok {
			r = &CampaignRow{Source: key.source, Campaign: key.campaign, LandingPage: key.landingPage}
			rows[key] = r
		}
		return r
	}

	// First pass: top-of-funnel counters from events.
	for _, event := range events {
		key := campaignKey{
			source:      NormalizeKey(event.UTMSource, FallbackSource),
			campaign:    NormalizeKey(event.UTMCampaign, FallbackCampaign),
			landingPage: NormalizeKey(event.PagePath, FallbackLandingPage),
		}
		r := row(key)
		switch event.Type {
		case models.EventLPView:
			r.LPViews++
		case models.EventCTAClick:
			r.CTAClicks++
		case models.EventFormStart:
			r.FormStarts++
		case models.EventCalendarOpen:
			r.CalendarOpens++
		case models.EventConversion:
			r.Conversions++
		}
	}

	// Second pass: lead-derived counters, creating rows the events pass
	// didn't.
	for _, lead := range leads {
		key := campaignKey{
			source:      NormalizeKey(lead.UTMSource, FallbackSource),
			campaign:    NormalizeKey(lead.UTMCampaign, FallbackCampaign),
			landingPage: NormalizeKey(lead.LandingPage, FallbackLandingPage),
		}
		r := row(key)
		r.FormSubmits++
		if HighIntent(lead) {
			r.HighIntentLeads++
		}
		if lead.CallBookedAt != nil {
			r.CallsBooked++
		}
		if lead.Status == models.StatusClosedWon {
			r.ClosedWon++
		}
	}

	// Third pass: attach spend by (source, campaign).
	spendByKey := make(map[[2]string]float64)
	for _, record := range spend {
		key := [2]string{
			NormalizeKey(record.Source, FallbackSource),
			NormalizeKey(record.Campaign, FallbackCampaign),
		}
		spendByKey[key] += record.Amount
	}
	for key, r := range rows {
		r.Spend = spendByKey[[2]string{key.source, key.campaign}]
	}

	out := make([]CampaignRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FormSubmits != out[j].FormSubmits {
			return out[i].FormSubmits > out[j].FormSubmits
		}
		if out[i].LPViews != out[j].LPViews {
			return out[i].LPViews > out[j].LPViews
		}
		return out[i].CTAClicks > out[j].CTAClicks
	})

	return out
}
