package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/models"
)

func TestCreateEvent(t *testing.T) {
	s := newTestStore(t)
	handler := CreateEvent(s, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/track", models.EventReceiver{
		Type:        models.EventLPView,
		PagePath:    "/tax-planning",
		SessionID:   "sess-1",
		UTMSource:   "google",
		UTMCampaign: "brand",
		Properties:  map[string]interface{}{"scrollDepth": 40},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])

	events := s.GetEvents(0)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventLPView, events[0].Type)
	assert.Equal(t, "/tax-planning", events[0].PagePath)
}

func TestCreateEventRequiresType(t *testing.T) {
	s := newTestStore(t)
	handler := CreateEvent(s, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/track", models.EventReceiver{PagePath: "/"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.GetEvents(0))
}

func TestCreateEventAcceptsUnknownTypes(t *testing.T) {
	s := newTestStore(t)
	handler := CreateEvent(s, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/track", models.EventReceiver{Type: "video_play"})

	require.Equal(t, http.StatusOK, rec.Code)
	events := s.GetEvents(0)
	require.Len(t, events, 1)
	assert.Equal(t, "video_play", events[0].Type)
	assert.NotNil(t, events[0].Properties)
}
