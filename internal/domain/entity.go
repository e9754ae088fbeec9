package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrNoFeedback = errors.New("no feedback recorded for candidate")
)

// EntityType names a persisted entity. The value doubles as the table name on
// the remote store.
type EntityType string

const (
	EntityUsers      EntityType = "users"
	EntityJobs       EntityType = "jobs"
	EntityCandidates EntityType = "candidates"
	EntityInterviews EntityType = "interviews"
	EntityFeedback   EntityType = "feedback"
	EntityOffers     EntityType = "offers"
	EntityAuditLog   EntityType = "audit_log"
)

// SyncedEntities lists every entity the domain service caches, in load order.
var SyncedEntities = []EntityType{
	EntityUsers,
	EntityJobs,
	EntityCandidates,
	EntityInterviews,
	EntityFeedback,
	EntityOffers,
}

func (t EntityType) String() string {
	return string(t)
}

// Record is a plain key/value object. Keys are domain-shape (camelCase) or
// store-shape (snake_case) depending on which side of the transcoder it is on.
type Record map[string]any

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value under key when it is a non-empty string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// ID returns the identifier carried by the record, if any.
func (r Record) ID() string {
	return r.String("id")
}

// ToRecord converts a domain struct into its domain-shape record through its
// JSON tags.
func ToRecord(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode %T into record: %w", v, err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// FromRecord fills v from a domain-shape record.
func FromRecord(rec Record, v any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode record into %T: %w", v, err)
	}
	return nil
}

// FromRecords converts a slice of records into typed entities.
func FromRecords[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := FromRecord(rec, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
