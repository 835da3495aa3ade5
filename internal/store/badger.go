package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cer4sco/freesscan/internal/types"
)

const scansBucket = "scans"

// StoredFinding is a finding with its stored severity identifier.
type StoredFinding struct {
	types.Finding
	SeverityID int `json:"severity_id"`
}

// ScanRecord is one saved scan.
type ScanRecord struct {
	ID             string          `json:"id"`
	ScanID         string          `json:"scan_id"`
	StoredAt       time.Time       `json:"stored_at"`
	Findings       []StoredFinding `json:"findings"`
	SeverityCounts map[string]int  `json:"severity_counts"`
}

// BadgerSink keeps scan records in a local badger directory, oldest first.
type BadgerSink struct {
	kv    *KV
	scans Bucket
	now   func() time.Time
}

// OpenBadger opens or creates a record store in dir.
func OpenBadger(dir string, log zerolog.Logger) (*BadgerSink, error) {
	kv, err := OpenKV(dir, log)
	if err != nil {
		return nil, err
	}
	return &BadgerSink{kv: kv, scans: kv.Bucket(scansBucket), now: time.Now}, nil
}

func (s *BadgerSink) Save(_ context.Context, scanID string, findings []types.Finding) error {
	now := s.now().UTC()
	rec := ScanRecord{
		ID:             fmt.Sprintf("%d-%s-%s", now.UnixNano(), scanID, uuid.NewString()),
		ScanID:         scanID,
		StoredAt:       now,
		Findings:       make([]StoredFinding, 0, len(findings)),
		SeverityCounts: map[string]int{},
	}
	for _, f := range findings {
		rec.Findings = append(rec.Findings, StoredFinding{Finding: f, SeverityID: f.Severity.Rank()})
		rec.SeverityCounts[string(f.Severity)]++
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode scan record: %w", err)
	}
	return s.scans.Put(rec.ID, raw)
}

// List returns all records, oldest first.
func (s *BadgerSink) List() ([]ScanRecord, error) {
	out := []ScanRecord{}
	err := s.scans.Each(func(_ string, value []byte) error {
		var rec ScanRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("decode scan record: %w", err)
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// Get returns the record with the given ID, or ErrNotFound.
func (s *BadgerSink) Get(id string) (ScanRecord, error) {
	var rec ScanRecord
	raw, err := s.scans.Get(id)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("decode scan record %s: %w", id, err)
	}
	return rec, nil
}

// PruneOlderThan removes records stored before cutoff. Records that cannot
// be decoded are kept.
func (s *BadgerSink) PruneOlderThan(cutoff time.Time) (int, error) {
	return s.scans.DeleteWhere(func(_ string, value []byte) bool {
		var rec ScanRecord
		return json.Unmarshal(value, &rec) == nil && rec.StoredAt.Before(cutoff)
	})
}

func (s *BadgerSink) Close() error { return s.kv.Close() }
