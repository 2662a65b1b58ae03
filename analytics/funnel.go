package analytics

import (
	"strconv"

	"github.com/nordbooks/leadtrack/models"
)

// Funnel holds the conversion funnel for one reporting window. The first
// three stages are counted from events, form submits from created leads
// (a stored lead is the proof of a submit, there is no id join), and the
// later stages from lead status and timestamps.
type Funnel struct {
	LPViews        int `json:"lpViews"`
	CTAClicks      int `json:"ctaClicks"`
	FormStarts     int `json:"formStarts"`
	FormSubmits    int `json:"formSubmits"`
	CallsBooked    int `json:"callsBooked"`
	CallsCompleted int `json:"callsCompleted"`
	ClosedWon      int `json:"closedWon"`

	ViewToCTARate         string `json:"viewToCtaRate"`
	CTAToFormRate         string `json:"ctaToFormRate"`
	FormToSubmitRate      string `json:"formToSubmitRate"`
	SubmitToBookedRate    string `json:"submitToBookedRate"`
	BookedToCompletedRate string `json:"bookedToCompletedRate"`
	CompletedToClosedRate string `json:"completedToClosedRate"`
}

// ComputeFunnel counts the funnel stages over one window of events and
// leads. Because submit and booked counts come from a different collection
// than views and clicks, a rate can exceed 100% when instrumentation
// double-counts; that is surfaced as-is, not clamped, since it is a
// data-quality signal.
func ComputeFunnel(events []models.Event, leads []models.Lead) Funnel {
	var f Funnel

	for _, event := range events {
		switch event.Type {
		case models.EventLPView:
			f.LPViews++
		case models.EventCTAClick:
			f.CTAClicks++
		case models.EventFormStart:
			f.FormStarts++
		}
	}

	f.FormSubmits = len(leads)
	for _, lead := range leads {
		if lead.CallBookedAt != nil {
			f.CallsBooked++
		}
		switch lead.Status {
		case models.StatusCallCompleted, models.StatusProposalSent,
			models.StatusClosedWon, models.StatusClosedLost:
			f.CallsCompleted++
		}
		if lead.Status == models.StatusClosedWon {
			f.ClosedWon++
		}
	}

	f.ViewToCTARate = Rate(f.CTAClicks, f.LPViews)
	f.CTAToFormRate = Rate(f.FormStarts, f.CTAClicks)
	f.FormToSubmitRate = Rate(f.FormSubmits, f.FormStarts)
	f.SubmitToBookedRate = Rate(f.CallsBooked, f.FormSubmits)
	f.BookedToCompletedRate = Rate(f.CallsCompleted, f.CallsBooked)
	f.CompletedToClosedRate = Rate(f.ClosedWon, f.CallsCompleted)

	return f
}

// Rate formats 100 * next / prev to one decimal place, returning "0.0"
// instead of dividing by zero.
func Rate(next, prev int) string {
	if prev == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(next)*100/float64(prev), 'f', 1, 64)
}
