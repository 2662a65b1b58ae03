package analytics

import (
	"strconv"
	"time"

	"github.com/nordbooks/leadtrack/models"
)

// StaleThreshold is how long a lead may sit in status "new" before it counts
// as waiting too long.
const StaleThreshold = time.Hour

// SpeedReport holds response-latency stats. AvgResponseMinutes and
// BookingRate are window-scoped; the waiting figures are computed over every
// lead still in status "new" regardless of window, because a stale lead from
// last month must still surface today.
type SpeedReport struct {
	AvgResponseMinutes   string `json:"avgResponseMinutes"` // "N/A" when nothing responded
	LeadsWaiting         int    `json:"leadsWaiting"`
	OldestWaitingMinutes int    `json:"oldestWaitingMinutes"`
	BookingRate          string `json:"bookingRate"`
}

// ComputeSpeed derives response stats from the window's leads plus the
// all-time waiting set.
func ComputeSpeed(windowLeads, waiting []models.Lead, now time.Time) SpeedReport {
	report := SpeedReport{AvgResponseMinutes: "N/A"}

	var responded int
	var totalMinutes float64
	var booked int
	for _, lead := range windowLeads {
		if lead.FirstResponseAt != nil {
			responded++
			totalMinutes += lead.FirstResponseAt.Sub(lead.CreatedAt).Minutes()
		}
		if lead.CallBookedAt != nil {
			booked++
		}
	}
	if responded > 0 {
		report.AvgResponseMinutes = strconv.FormatFloat(totalMinutes/float64(responded), 'f', 1, 64)
	}
	report.BookingRate = Rate(booked, len(windowLeads))

	var oldest time.Duration
	for _, lead := range waiting {
		age := now.Sub(lead.CreatedAt)
		if age > StaleThreshold {
			report.LeadsWaiting++
		}
		if age > oldest {
			oldest = age
		}
	}
	report.OldestWaitingMinutes = int(oldest.Minutes())

	return report
}
