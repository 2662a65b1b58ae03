package models

import "time"

// SpendRecord is a manually entered advertising spend entry. Immutable once
// created; aggregated by summing within (source, campaign) buckets.
type SpendRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Campaign  string    `json:"campaign"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Notes     string    `json:"notes"`
}

// SpendReceiver is the admin spend-form payload.
type SpendReceiver struct {
	Source   string  `json:"source"`
	Campaign string  `json:"campaign"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Notes    string  `json:"notes"`
}
