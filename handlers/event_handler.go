package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/metrics"
	"github.com/nordbooks/leadtrack/models"
	"github.com/nordbooks/leadtrack/store"
	"github.com/nordbooks/leadtrack/utils"
)

// CreateEvent is the public tracking collector. It accepts any event type
// string; only the known ones feed funnel stages.
func CreateEvent(leadStore *store.Store, m *metrics.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var receiver models.EventReceiver
		if err := json.NewDecoder(r.Body).Decode(&receiver); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if strings.TrimSpace(receiver.Type) == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New("type is required"))
			return
		}

		event := leadStore.AddEvent(receiver)
		if m != nil {
			m.EventsIngested.WithLabelValues(event.Type).Inc()
		}

		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"id": event.ID})
	}
}

// parseDays reads the ?days=N window parameter, falling back to def for
// missing or unusable values.
func parseDays(r *http.Request, def int) int {
	if v := r.URL.Query().Get("days"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
