package models

import "time"

// LeadStatus is the pipeline stage of a lead. The usual progression is
// new -> contacted -> qualified -> call_booked -> call_completed ->
// proposal_sent -> closed_won | closed_lost, but the store does not
// restrict transitions: an admin may skip or move a lead backward.
type LeadStatus string

const (
	StatusNew           LeadStatus = "new"
	StatusContacted     LeadStatus = "contacted"
	StatusQualified     LeadStatus = "qualified"
	StatusCallBooked    LeadStatus = "call_booked"
	StatusCallCompleted LeadStatus = "call_completed"
	StatusProposalSent  LeadStatus = "proposal_sent"
	StatusClosedWon     LeadStatus = "closed_won"
	StatusClosedLost    LeadStatus = "closed_lost"
)

// LeadStatuses lists every valid status, in pipeline order.
var LeadStatuses = []LeadStatus{
	StatusNew,
	StatusContacted,
	StatusQualified,
	StatusCallBooked,
	StatusCallCompleted,
	StatusProposalSent,
	StatusClosedWon,
	StatusClosedLost,
}

// ValidLeadStatus reports whether s is one of the known statuses.
func ValidLeadStatus(s LeadStatus) bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Urgency values submitted by the qualification form.
const (
	UrgencyUrgent    = "urgent"
	UrgencySoon      = "soon"
	UrgencyExploring = "exploring"
)

// RevenueBandLowest is the lowest revenue band on the qualification form.
// Leads in this band never count as high intent.
const RevenueBandLowest = "under-1m"

// Lead represents a submitted contact-form record.
type Lead struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	// Contact fields
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`

	// Qualification fields
	Urgency   string `json:"urgency"`
	Challenge string `json:"challenge"`
	Revenue   string `json:"revenue"`

	// Attribution fields
	UTMSource   string `json:"utmSource"`
	UTMMedium   string `json:"utmMedium"`
	UTMCampaign string `json:"utmCampaign"`
	UTMTerm     string `json:"utmTerm"`
	UTMContent  string `json:"utmContent"`
	LandingPage string `json:"landingPage"`
	Referrer    string `json:"referrer"`

	// Session linkage
	SessionID    string   `json:"sessionId"`
	PageViews    int      `json:"pageViews"`
	TimeOnSite   int      `json:"timeOnSite"` // seconds
	PagesVisited []string `json:"pagesVisited"`

	Status LeadStatus `json:"status"`

	// Response timestamps, each set at most once (first write wins).
	FirstResponseAt *time.Time `json:"firstResponseAt"`
	CallBookedAt    *time.Time `json:"callBookedAt"`
	ClosedAt        *time.Time `json:"closedAt"`

	// Raw client metadata
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent"`
	Device    string `json:"device"`
	Browser   string `json:"browser"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	City      string `json:"city"`
}

// LeadReceiver is the contact-form payload as sent by the client.
type LeadReceiver struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`

	Service string `json:"service"` // the challenge/category the prospect picked
	Revenue string `json:"revenue"`
	Urgency string `json:"urgency"`

	UTMSource   string `json:"utmSource"`
	UTMMedium   string `json:"utmMedium"`
	UTMCampaign string `json:"utmCampaign"`
	UTMTerm     string `json:"utmTerm"`
	UTMContent  string `json:"utmContent"`
	LandingPage string `json:"landingPage"`
	Referrer    string `json:"referrer"`

	SessionID    string   `json:"sessionId"`
	PageViews    int      `json:"pageViews"`
	TimeOnSite   int      `json:"timeOnSite"`
	PagesVisited []string `json:"pagesVisited"`

	// Honeypot. Real users never fill this in; bots do.
	Website string `json:"website"`
}

// LeadInsert represents the structure for inserting new lead records.
// The store assigns the id, creation timestamp, initial status and the
// device/browser classification.
type LeadInsert struct {
	Name    string
	Email   string
	Phone   string
	Company string

	Urgency   string
	Challenge string
	Revenue   string

	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMTerm     string
	UTMContent  string
	LandingPage string
	Referrer    string

	SessionID    string
	PageViews    int
	TimeOnSite   int
	PagesVisited []string

	IP        string
	UserAgent string
	Country   string
	Region    string
	City      string
}
