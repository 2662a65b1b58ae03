package models

import "time"

// Known event types emitted by the site instrumentation. The type field is
// an open string enum: unknown types are stored as-is and simply don't feed
// any funnel stage.
const (
	EventLPView       = "lp_view"
	EventCTAClick     = "cta_click"
	EventFormStart    = "form_start"
	EventCalendarOpen = "calendar_open"
	EventConversion   = "conversion"
)

// Event is a single tracked interaction. Immutable once created.
type Event struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	SessionID   string                 `json:"sessionId"`
	Type        string                 `json:"type"`
	PagePath    string                 `json:"pagePath"`
	Properties  map[string]interface{} `json:"properties"`
	UTMSource   string                 `json:"utmSource"`
	UTMCampaign string                 `json:"utmCampaign"`
}

// EventReceiver is the tracking beacon payload as sent by the client.
type EventReceiver struct {
	Type        string                 `json:"type"`
	PagePath    string                 `json:"pagePath"`
	SessionID   string                 `json:"sessionId"`
	Properties  map[string]interface{} `json:"properties"`
	UTMSource   string                 `json:"utmSource"`
	UTMCampaign string                 `json:"utmCampaign"`
}
