package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordbooks/leadtrack/models"
)

func TestCampaignRowsShareOneKey(t *testing.T) {
	events := []models.Event{
		{Type: models.EventLPView, UTMSource: "Google", UTMCampaign: "Brand", PagePath: "/tax-planning"},
		{Type: models.EventLPView, UTMSource: "  google ", UTMCampaign: "brand", PagePath: "/tax-planning"},
		{Type: models.EventCTAClick, UTMSource: "google", UTMCampaign: "BRAND", PagePath: "/tax-planning"},
	}
	leads := []models.Lead{
		{UTMSource: "GOOGLE", UTMCampaign: "brand", LandingPage: "/tax-planning"},
	}

	rows := ComputeCampaignPerformance(events, leads, nil)

	// Casing and whitespace variants of the same triple collapse to one row.
	require.Len(t, rows, 1)
	assert.Equal(t, "google", rows[0].Source)
	assert.Equal(t, "brand", rows[0].Campaign)
	assert.Equal(t, "/tax-planning", rows[0].LandingPage)
	assert.Equal(t, 2, rows[0].LPViews)
	assert.Equal(t, 1, rows[0].CTAClicks)
	assert.Equal(t, 1, rows[0].FormSubmits)
}

func TestCampaignLeadsCreateRowsWithoutEvents(t *testing.T) {
	booked := time.Now()
	leads := []models.Lead{
		{
			UTMSource:    "linkedin",
			UTMCampaign:  "cfo-guide",
			LandingPage:  "/cfo-services",
			Urgency:      models.UrgencyUrgent,
			Revenue:      "5m-20m",
			CallBookedAt: &booked,
			Status:       models.StatusClosedWon,
		},
	}

	rows := ComputeCampaignPerformance(nil, leads, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].LPViews)
	assert.Equal(t, 1, rows[0].FormSubmits)
	assert.Equal(t, 1, rows[0].HighIntentLeads)
	assert.Equal(t, 1, rows[0].CallsBooked)
	assert.Equal(t, 1, rows[0].ClosedWon)
}

func TestHighIntent(t *testing.T) {
	tests := []struct {
		name    string
		urgency string
		revenue string
		want    bool
	}{
		{"urgent and mid band", models.UrgencyUrgent, "5m-20m", true},
		{"soon and mid band", models.UrgencySoon, "1m-5m", true},
		{"urgent but lowest band", models.UrgencyUrgent, models.RevenueBandLowest, false},
		{"exploring", models.UrgencyExploring, "5m-20m", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := models.Lead{Urgency: tt.urgency, Revenue: tt.revenue}
			assert.Equal(t, tt.want, HighIntent(lead))
		})
	}
}

func TestCampaignSpendSharedAcrossLandingPages(t *testing.T) {
	events := []models.Event{
		{Type: models.EventLPView, UTMSource: "google", UTMCampaign: "brand", PagePath: "/tax-planning"},
		{Type: models.EventLPView, UTMSource: "google", UTMCampaign: "brand", PagePath: "/cfo-services"},
	}
	spend := []models.SpendRecord{
		{Source: "google", Campaign: "brand", Amount: 100},
		{Source: "google", Campaign: "brand", Amount: 150},
	}

	rows := ComputeCampaignPerformance(events, nil, spend)

	// Spend is keyed by (source, campaign) only: both landing-page rows show
	// the same undivided total.
	require.Len(t, rows, 2)
	assert.Equal(t, 250.0, rows[0].Spend)
	assert.Equal(t, 250.0, rows[1].Spend)
}

func TestCampaignSortOrder(t *testing.T) {
	leads := []models.Lead{
		{UTMSource: "a", UTMCampaign: "one", LandingPage: "/x"},
		{UTMSource: "a", UTMCampaign: "one", LandingPage: "/x"},
		{UTMSource: "b", UTMCampaign: "two", LandingPage: "/x"},
	}
	events := []models.Event{
		{Type: models.EventLPView, UTMSource: "b", UTMCampaign: "two", PagePath: "/x"},
		{Type: models.EventLPView, UTMSource: "c", UTMCampaign: "three", PagePath: "/x"},
		{Type: models.EventLPView, UTMSource: "c", UTMCampaign: "three", PagePath: "/x"},
	}

	rows := ComputeCampaignPerformance(events, leads, nil)

	require.Len(t, rows, 3)
	// Most submits first; views break the tie among rows without submits.
	assert.Equal(t, "one", rows[0].Campaign)
	assert.Equal(t, "two", rows[1].Campaign)
	assert.Equal(t, "three", rows[2].Campaign)
	assert.Greater(t, rows[2].LPViews, rows[1].LPViews)
	assert.Greater(t, rows[1].FormSubmits, rows[2].FormSubmits)
}
