package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/analytics"
	"github.com/nordbooks/leadtrack/models"
	"github.com/nordbooks/leadtrack/store"
	"github.com/nordbooks/leadtrack/utils"
)

// campaignRowView is a campaign row plus the derived cost and rate columns.
// The aggregator deliberately returns raw counters; turning them into
// display metrics is this handler's job.
type campaignRowView struct {
	analytics.CampaignRow

	CostPerLead           string `json:"costPerLead"`
	CostPerHighIntentLead string `json:"costPerHighIntentLead"`
	ViewToCTARate         string `json:"viewToCtaRate"`
	CTAToSubmitRate       string `json:"ctaToSubmitRate"`
	SubmitToBookedRate    string `json:"submitToBookedRate"`
}

type sourceRowView struct {
	analytics.SourceRow

	CostPerLead string `json:"costPerLead"`
}

type waitingLeadView struct {
	models.Lead

	WaitingMinutes int `json:"waitingMinutes"`
}

// GetDashboard aggregates everything the marketing dashboard shows for the
// trailing N-day window (default 7).
func GetDashboard(leadStore *store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := parseDays(r, 7)
		now := time.Now()

		events := leadStore.GetEvents(days)
		leads := leadStore.GetLeads(days)
		spendRecords := leadStore.GetSpendRecords(days)
		waiting := leadStore.LeadsWaiting()

		funnel := analytics.ComputeFunnel(events, leads)
		quality := analytics.ComputeQuality(leads)
		speed := analytics.ComputeSpeed(leads, waiting, now)

		campaigns := analytics.ComputeCampaignPerformance(events, leads, spendRecords)
		campaignViews := make([]campaignRowView, 0, len(campaigns))
		for _, row := range campaigns {
			campaignViews = append(campaignViews, campaignRowView{
				CampaignRow:           row,
				CostPerLead:           costPer(row.Spend, row.FormSubmits),
				CostPerHighIntentLead: costPer(row.Spend, row.HighIntentLeads),
				ViewToCTARate:         analytics.Rate(row.CTAClicks, row.LPViews),
				CTAToSubmitRate:       analytics.Rate(row.FormSubmits, row.CTAClicks),
				SubmitToBookedRate:    analytics.Rate(row.CallsBooked, row.FormSubmits),
			})
		}

		sources := analytics.ComputeSourceBreakdown(events, leads, spendRecords)
		sourceViews := make([]sourceRowView, 0, len(sources))
		for _, row := range sources {
			sourceViews = append(sourceViews, sourceRowView{
				SourceRow:   row,
				CostPerLead: costPer(row.Spend, row.Leads),
			})
		}

		// Oldest ten waiting leads; the store returns them oldest first.
		waitingViews := make([]waitingLeadView, 0, 10)
		for _, lead := range waiting {
			if len(waitingViews) == 10 {
				break
			}
			waitingViews = append(waitingViews, waitingLeadView{
				Lead:           lead,
				WaitingMinutes: int(now.Sub(lead.CreatedAt).Minutes()),
			})
		}

		var totalSpend float64
		for _, record := range spendRecords {
			totalSpend += record.Amount
		}
		var highIntent int
		for _, lead := range leads {
			if analytics.HighIntent(lead) {
				highIntent++
			}
		}

		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"days":                days,
			"funnel":              funnel,
			"sourceBreakdown":     sourceViews,
			"campaignPerformance": campaignViews,
			"quality":             quality,
			"speed":               speed,
			"leadsWaiting":        waitingViews,
			"totals": map[string]interface{}{
				"leads":       len(leads),
				"events":      len(events),
				"spend":       totalSpend,
				"highIntent":  highIntent,
				"callsBooked": funnel.CallsBooked,
				"closedWon":   funnel.ClosedWon,
			},
		})
	}
}

// costPer divides spend by a lead count, rounded to whole currency units.
// "—" means the metric is undefined for the row (nothing spent or nothing
// to divide by).
func costPer(spend float64, count int) string {
	if spend == 0 || count == 0 {
		return "—"
	}
	return strconv.Itoa(int(math.Round(spend / float64(count))))
}
