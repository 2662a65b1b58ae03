package store

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/models"
)

// recordLog is an append-only JSONL file, one record per line.
type recordLog struct {
	name string
	f    *os.File
	w    *bufio.Writer
	enc  *json.Encoder
}

func openRecordLog(path string) (*recordLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	return &recordLog{name: filepath.Base(path), f: f, w: w, enc: json.NewEncoder(w)}, nil
}

func (l *recordLog) append(v interface{}) error {
	return l.enc.Encode(v)
}

func (l *recordLog) flush() error {
	return l.w.Flush()
}

func (l *recordLog) close() error {
	flushErr := l.w.Flush()
	closeErr := l.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// openLogs replays the existing record logs into memory and opens them for
// appending.
func (s *Store) openLogs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	leadPath := filepath.Join(dir, "leads.jsonl")
	eventPath := filepath.Join(dir, "events.jsonl")
	spendPath := filepath.Join(dir, "spend.jsonl")

	// Replay leads: updates are appended as full records, so the last record
	// per id wins.
	if err := replayFile(s.logger, leadPath, func(dec *json.Decoder) error {
		var lead models.Lead
		if err := dec.Decode(&lead); err != nil {
			return err
		}
		if i, ok := s.leadIdx[lead.ID]; ok {
			s.leads[i] = lead
		} else {
			s.leadIdx[lead.ID] = len(s.leads)
			s.leads = append(s.leads, lead)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := replayFile(s.logger, eventPath, func(dec *json.Decoder) error {
		var event models.Event
		if err := dec.Decode(&event); err != nil {
			return err
		}
		s.events = append(s.events, event)
		return nil
	}); err != nil {
		return err
	}

	if err := replayFile(s.logger, spendPath, func(dec *json.Decoder) error {
		var record models.SpendRecord
		if err := dec.Decode(&record); err != nil {
			return err
		}
		s.spend = append(s.spend, record)
		return nil
	}); err != nil {
		return err
	}

	var err error
	if s.leadLog, err = openRecordLog(leadPath); err != nil {
		return err
	}
	if s.eventLog, err = openRecordLog(eventPath); err != nil {
		return err
	}
	if s.spendLog, err = openRecordLog(spendPath); err != nil {
		return err
	}
	return nil
}

// replayFile decodes records until EOF. A decode error means a torn write
// from an unclean shutdown; replay stops there and keeps what was read.
func replayFile(logger *zap.Logger, path string, decode func(*json.Decoder) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	for {
		err := decode(dec)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			logger.Warn("record log replay stopped at corrupt record",
				zap.String("file", filepath.Base(path)),
				zap.Error(err),
			)
			return nil
		}
	}
}

// appendRecord writes v to the given log. Persistence failures are logged
// and counted but never surfaced to the caller: the in-memory state is the
// source of truth for a running process.
func (s *Store) appendRecord(l *recordLog, v interface{}, flush bool) {
	if l == nil {
		return
	}
	if err := l.append(v); err != nil {
		s.persistFailed(l.name, err)
		return
	}
	if flush {
		if err := l.flush(); err != nil {
			s.persistFailed(l.name, err)
		}
	}
}

func (s *Store) flushEvents() {
	s.unflushedEvents = 0
	if s.eventLog == nil {
		return
	}
	if err := s.eventLog.flush(); err != nil {
		s.persistFailed(s.eventLog.name, err)
	}
}

func (s *Store) persistFailed(file string, err error) {
	s.logger.Error("record log write failed", zap.String("file", file), zap.Error(err))
	if s.m != nil {
		s.m.PersistFailures.Inc()
	}
}
