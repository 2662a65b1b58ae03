package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/models"
	"github.com/nordbooks/leadtrack/store"
	"github.com/nordbooks/leadtrack/utils"
)

// GetSpendRecords lists manual spend entries in the trailing window.
func GetSpendRecords(leadStore *store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := parseDays(r, 30)
		records := leadStore.GetSpendRecords(days)

		var total float64
		for _, record := range records {
			total += record.Amount
		}

		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"records": records,
			"total":   total,
		})
	}
}

// CreateSpendRecord records a manual ad-spend entry from the admin form.
func CreateSpendRecord(leadStore *store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var receiver models.SpendReceiver
		if err := json.NewDecoder(r.Body).Decode(&receiver); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if strings.TrimSpace(receiver.Source) == "" || strings.TrimSpace(receiver.Campaign) == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New("source and campaign are required"))
			return
		}
		if !(receiver.Amount > 0) || math.IsInf(receiver.Amount, 0) || math.IsNaN(receiver.Amount) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, errors.New("amount must be a positive number"))
			return
		}

		record := leadStore.AddSpendRecord(receiver)

		utils.WriteJSON(w, http.StatusOK, record)
	}
}
