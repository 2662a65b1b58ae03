package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/models"
)

func TestCreateSpendRecord(t *testing.T) {
	s := newTestStore(t)
	handler := CreateSpendRecord(s, zap.NewNop())

	rec := postJSON(t, handler, "/api/spend", models.SpendReceiver{
		Source:   "google",
		Campaign: "brand",
		Amount:   250.00,
		Notes:    "March search budget",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.SpendRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "USD", record.Currency) // defaulted
	assert.Equal(t, 250.00, record.Amount)
}

func TestCreateSpendRecordValidation(t *testing.T) {
	s := newTestStore(t)
	handler := CreateSpendRecord(s, zap.NewNop())

	tests := []struct {
		name string
		body models.SpendReceiver
	}{
		{"zero amount", models.SpendReceiver{Source: "google", Campaign: "x", Amount: 0}},
		{"negative amount", models.SpendReceiver{Source: "google", Campaign: "x", Amount: -10}},
		{"missing source", models.SpendReceiver{Campaign: "x", Amount: 100}},
		{"missing campaign", models.SpendReceiver{Source: "google", Amount: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler, "/api/spend", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, s.GetSpendRecords(0))
}

func TestGetSpendRecords(t *testing.T) {
	s := newTestStore(t)
	s.AddSpendRecord(models.SpendReceiver{Source: "google", Campaign: "x", Amount: 100})
	s.AddSpendRecord(models.SpendReceiver{Source: "google", Campaign: "x", Amount: 150})

	handler := GetSpendRecords(s, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/spend?days=30", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Records []models.SpendRecord `json:"records"`
		Total   float64              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Records, 2)
	assert.Equal(t, 250.0, resp.Total)
}
