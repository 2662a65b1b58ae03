package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/middleware"
	"github.com/nordbooks/leadtrack/models"
	"github.com/nordbooks/leadtrack/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("", 1, nil, zap.NewNop())
	require.NoError(t, err)
	return s
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func validSubmission() models.LeadReceiver {
	return models.LeadReceiver{
		Name:        "Jane Smith",
		Email:       "jane@acme-manufacturing.com",
		Company:     "Acme Manufacturing",
		Service:     "fractional-cfo",
		Revenue:     "5m-20m",
		Urgency:     models.UrgencyUrgent,
		UTMSource:   "google",
		UTMCampaign: "brand",
		LandingPage: "/cfo-services",
	}
}

func TestCreateLeadSuccess(t *testing.T) {
	s := newTestStore(t)
	handler := CreateLead(s, nil, nil, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/contact", validSubmission())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["id"])

	leads := s.GetLeads(0)
	require.Len(t, leads, 1)
	assert.Equal(t, "fractional-cfo", leads[0].Challenge)
	assert.Equal(t, models.StatusNew, leads[0].Status)
	assert.Equal(t, "203.0.113.7", leads[0].IP)
}

func TestCreateLeadDefaultsBlankSource(t *testing.T) {
	s := newTestStore(t)
	handler := CreateLead(s, nil, nil, nil, zap.NewNop())

	submission := validSubmission()
	submission.UTMSource = "   "
	rec := postJSON(t, handler, "/api/contact", submission)

	require.Equal(t, http.StatusOK, rec.Code)
	leads := s.GetLeads(0)
	require.Len(t, leads, 1)
	assert.Equal(t, "direct", leads[0].UTMSource)
}

func TestCreateLeadHoneypot(t *testing.T) {
	s := newTestStore(t)
	handler := CreateLead(s, nil, nil, nil, zap.NewNop())

	submission := validSubmission()
	submission.Website = "http://spam.example"
	rec := postJSON(t, handler, "/api/contact", submission)

	// The bot gets a success response it can't distinguish from the real
	// one, but nothing is stored.
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Empty(t, s.GetLeads(0))
}

func TestCreateLeadValidation(t *testing.T) {
	s := newTestStore(t)
	handler := CreateLead(s, nil, nil, nil, zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*models.LeadReceiver)
	}{
		{"short name", func(r *models.LeadReceiver) { r.Name = "J" }},
		{"bad email", func(r *models.LeadReceiver) { r.Email = "not-an-email" }},
		{"free mailbox", func(r *models.LeadReceiver) { r.Email = "jane@gmail.com" }},
		{"missing service", func(r *models.LeadReceiver) { r.Service = "" }},
		{"missing revenue", func(r *models.LeadReceiver) { r.Revenue = "" }},
		{"missing urgency", func(r *models.LeadReceiver) { r.Urgency = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submission := validSubmission()
			tt.mutate(&submission)
			rec := postJSON(t, handler, "/api/contact", submission)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, s.GetLeads(0))
}

func TestCreateLeadRateLimited(t *testing.T) {
	s := newTestStore(t)
	limiter := middleware.NewRateLimiter(5, time.Hour, nil, zap.NewNop())
	handler := limiter.Limit(CreateLead(s, nil, nil, nil, zap.NewNop()))

	for i := 0; i < 5; i++ {
		rec := postJSON(t, handler, "/api/contact", validSubmission())
		require.Equal(t, http.StatusOK, rec.Code, "submission %d", i+1)
	}

	rec := postJSON(t, handler, "/api/contact", validSubmission())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Len(t, s.GetLeads(0), 5)
}

func TestGetLeadsFiltersByStatus(t *testing.T) {
	s := newTestStore(t)
	lead := s.AddLead(models.LeadInsert{Name: "Jane"})
	s.AddLead(models.LeadInsert{Name: "John"})
	_, err := s.UpdateLeadStatus(lead.ID, models.StatusQualified)
	require.NoError(t, err)

	handler := GetLeads(s, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/leads?status=qualified", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Leads []models.Lead `json:"leads"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, lead.ID, resp.Leads[0].ID)

	// Unknown status values are rejected, not silently empty.
	req = httptest.NewRequest("GET", "/api/leads?status=bogus", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateLeadStatusHandler(t *testing.T) {
	s := newTestStore(t)
	lead := s.AddLead(models.LeadInsert{Name: "Jane"})
	handler := UpdateLeadStatus(s, zap.NewNop())

	t.Run("InvalidStatus", func(t *testing.T) {
		rec := patchJSON(t, handler, map[string]string{"id": lead.ID, "status": "escalated"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownID", func(t *testing.T) {
		rec := patchJSON(t, handler, map[string]string{"id": "missing", "status": "contacted"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		rec := patchJSON(t, handler, map[string]string{"id": lead.ID, "status": "contacted"})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated models.Lead
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, models.StatusContacted, updated.Status)
		assert.NotNil(t, updated.FirstResponseAt)
	})
}

func patchJSON(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", "/api/leads", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
