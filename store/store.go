package store

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/metrics"
	"github.com/nordbooks/leadtrack/models"
	"github.com/nordbooks/leadtrack/utils"
)

var ErrLeadNotFound = errors.New("lead not found")

// Store owns the lead, event and spend collections. It is created once in
// main and injected into every handler; mutations are guarded by a mutex
// because the HTTP server runs requests concurrently.
//
// Persistence is an append-only JSONL log per collection. Lead status updates
// append the full updated record and replay keeps the last record per id, so
// the logs never need in-place rewrites. Event appends are buffered and only
// flushed every flushEvery records: losing a handful of page-view beacons on
// an unclean shutdown is an accepted tradeoff, leads and spend are flushed on
// every write.
type Store struct {
	mu      sync.RWMutex
	leads   []models.Lead
	leadIdx map[string]int
	events  []models.Event
	spend   []models.SpendRecord

	leadLog         *recordLog
	eventLog        *recordLog
	spendLog        *recordLog
	flushEvery      int
	unflushedEvents int

	logger *zap.Logger
	m      *metrics.Metrics
	now    func() time.Time
}

// Open creates a store rooted at dir, replaying any existing record logs.
// An empty dir means memory-only operation.
func Open(dir string, flushEvery int, m *metrics.Metrics, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if flushEvery < 1 {
		flushEvery = 1
	}

	s := &Store{
		leadIdx:    make(map[string]int),
		flushEvery: flushEvery,
		logger:     logger,
		m:          m,
		now:        time.Now,
	}

	if dir == "" {
		return s, nil
	}

	if err := s.openLogs(filepath.Clean(dir)); err != nil {
		return nil, err
	}

	s.logger.Info("store opened",
		zap.String("dir", dir),
		zap.Int("leads", len(s.leads)),
		zap.Int("events", len(s.events)),
		zap.Int("spendRecords", len(s.spend)),
	)

	return s, nil
}

// AddLead creates a lead from a contact-form submission. The store assigns
// the id and server timestamp, classifies the user agent and defaults every
// optional field, then appends the record to the lead log.
func (s *Store) AddLead(insert models.LeadInsert) models.Lead {
	device, browser := utils.ClassifyUserAgent(insert.UserAgent)

	utmSource := insert.UTMSource
	if strings.TrimSpace(utmSource) == "" {
		utmSource = "direct"
	}

	pagesVisited := insert.PagesVisited
	if pagesVisited == nil {
		pagesVisited = []string{}
	}

	lead := models.Lead{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),

		Name:    insert.Name,
		Email:   insert.Email,
		Phone:   insert.Phone,
		Company: insert.Company,

		Urgency:   insert.Urgency,
		Challenge: insert.Challenge,
		Revenue:   insert.Revenue,

		UTMSource:   utmSource,
		UTMMedium:   insert.UTMMedium,
		UTMCampaign: insert.UTMCampaign,
		UTMTerm:     insert.UTMTerm,
		UTMContent:  insert.UTMContent,
		LandingPage: insert.LandingPage,
		Referrer:    insert.Referrer,

		SessionID:    insert.SessionID,
		PageViews:    insert.PageViews,
		TimeOnSite:   insert.TimeOnSite,
		PagesVisited: pagesVisited,

		Status: models.StatusNew,

		IP:        insert.IP,
		UserAgent: insert.UserAgent,
		Device:    device,
		Browser:   browser,
		Country:   insert.Country,
		Region:    insert.Region,
		City:      insert.City,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.leadIdx[lead.ID] = len(s.leads)
	s.leads = append(s.leads, lead)
	s.appendRecord(s.leadLog, lead, true)

	return lead
}

// UpdateLeadStatus sets the lead's status unconditionally (the pipeline does
// not restrict transitions) and stamps the response timestamps the first time
// the matching stage is reached. Already-set timestamps are never touched.
func (s *Store) UpdateLeadStatus(id string, status models.LeadStatus) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.leadIdx[id]
	if !ok {
		return models.Lead{}, ErrLeadNotFound
	}

	lead := &s.leads[i]
	lead.Status = status

	now := s.now()
	if status != models.StatusNew && lead.FirstResponseAt == nil {
		t := now
		lead.FirstResponseAt = &t
	}
	if status == models.StatusCallBooked && lead.CallBookedAt == nil {
		t := now
		lead.CallBookedAt = &t
	}
	if (status == models.StatusClosedWon || status == models.StatusClosedLost) && lead.ClosedAt == nil {
		t := now
		lead.ClosedAt = &t
	}

	s.appendRecord(s.leadLog, *lead, true)

	return *lead, nil
}

// AddEvent appends a tracked interaction. The event log flush is batched.
func (s *Store) AddEvent(receiver models.EventReceiver) models.Event {
	properties := receiver.Properties
	if properties == nil {
		properties = map[string]interface{}{}
	}

	event := models.Event{
		ID:          uuid.NewString(),
		Timestamp:   s.now(),
		SessionID:   receiver.SessionID,
		Type:        receiver.Type,
		PagePath:    receiver.PagePath,
		Properties:  properties,
		UTMSource:   receiver.UTMSource,
		UTMCampaign: receiver.UTMCampaign,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	s.appendRecord(s.eventLog, event, false)
	s.unflushedEvents++
	if s.unflushedEvents >= s.flushEvery {
		s.flushEvents()
	}

	return event
}

// AddSpendRecord appends a manual spend entry. Amount validation happens at
// the API boundary; the store trusts its input.
func (s *Store) AddSpendRecord(receiver models.SpendReceiver) models.SpendRecord {
	currency := receiver.Currency
	if currency == "" {
		currency = "USD"
	}

	record := models.SpendRecord{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Source:    receiver.Source,
		Campaign:  receiver.Campaign,
		Amount:    receiver.Amount,
		Currency:  currency,
		Notes:     receiver.Notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spend = append(s.spend, record)
	s.appendRecord(s.spendLog, record, true)

	return record
}

// GetLeads returns the leads created in the trailing window of whole days.
// days <= 0 returns everything.
func (s *Store) GetLeads(days int) []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.cutoff(days)
	out := make([]models.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if cutoff.IsZero() || lead.CreatedAt.After(cutoff) {
			out = append(out, lead)
		}
	}
	return out
}

// GetEvents returns the events recorded in the trailing window of whole days.
func (s *Store) GetEvents(days int) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.cutoff(days)
	out := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		if cutoff.IsZero() || event.Timestamp.After(cutoff) {
			out = append(out, event)
		}
	}
	return out
}

// GetSpendRecords returns the spend entries recorded in the trailing window.
func (s *Store) GetSpendRecords(days int) []models.SpendRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.cutoff(days)
	out := make([]models.SpendRecord, 0, len(s.spend))
	for _, record := range s.spend {
		if cutoff.IsZero() || record.Timestamp.After(cutoff) {
			out = append(out, record)
		}
	}
	return out
}

// LeadsWaiting returns every lead still in status "new", regardless of age.
// A stale lead from last month must still surface as an alert today, so this
// is deliberately not window-scoped. Results come back oldest first.
func (s *Store) LeadsWaiting() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Lead
	for _, lead := range s.leads {
		if lead.Status == models.StatusNew {
			out = append(out, lead)
		}
	}
	return out
}

// Close flushes and closes the record logs.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, l := range []*recordLog{s.leadLog, s.eventLog, s.spendLog} {
		if l == nil {
			continue
		}
		if err := l.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Store) cutoff(days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return s.now().Add(-time.Duration(days) * 24 * time.Hour)
}
