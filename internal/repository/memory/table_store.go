// Package memory is an in-process implementation of the remote table API.
// It backs local development (STORE_DRIVER=memory) and the package tests.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-hiring-sync/internal/domain"

	"github.com/google/uuid"
)

var ErrRowNotFound = errors.New("row not found")

// Store operations, used for failure injection.
const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Tables without an updated_at column.
var appendOnly = map[string]bool{
	domain.EntityAuditLog.String(): true,
}

// TableStore keeps rows per table in insertion order. Rows cross the API
// boundary as JSON copies, so callers see wire-like values (strings for
// timestamps, float64 for numbers) and never alias stored state.
type TableStore struct {
	mu       sync.Mutex
	tables   map[string][]domain.Record
	failures map[string]error
	now      func() time.Time
}

func NewTableStore() *TableStore {
	return &TableStore{
		tables:   make(map[string][]domain.Record),
		failures: make(map[string]error),
		now:      time.Now,
	}
}

// SetClock replaces the clock used for created_at and updated_at.
func (s *TableStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Fail makes every later op on table return err. An empty table matches all
// tables. A nil err clears the injection.
func (s *TableStore) Fail(op, table string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := op + ":" + table
	if err == nil {
		delete(s.failures, key)
		return
	}
	s.failures[key] = err
}

// Recover clears all injected failures.
func (s *TableStore) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

// Seed stores rows as given, keeping their ids.
func (s *TableStore) Seed(table string, rows ...domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		stored, _ := normalize(row)
		if stored.ID() == "" {
			stored["id"] = uuid.NewString()
		}
		s.tables[table] = append(s.tables[table], stored)
	}
}

// Rows returns copies of every stored row of table in insertion order.
func (s *TableStore) Rows(table string) []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Record, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		out = append(out, export(row))
	}
	return out
}

func (s *TableStore) Select(ctx context.Context, table string, opts domain.SelectOptions) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, OpSelect, table); err != nil {
		return nil, err
	}

	matched := make([]domain.Record, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		if matches(row, opts.Filters) {
			matched = append(matched, row)
		}
	}

	if opts.OrderBy != "" {
		if opts.Descending {
			for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
				matched[i], matched[j] = matched[j], matched[i]
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(matched[i][opts.OrderBy], matched[j][opts.OrderBy])
			if opts.Descending {
				return c > 0
			}
			return c < 0
		})
	}

	out := make([]domain.Record, 0, len(matched))
	for _, row := range matched {
		out = append(out, export(row))
	}
	return out, nil
}

func (s *TableStore) Insert(ctx context.Context, table string, row domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, OpInsert, table); err != nil {
		return nil, err
	}

	stored, err := normalize(row)
	if err != nil {
		return nil, err
	}
	if stored.ID() == "" {
		stored["id"] = uuid.NewString()
	}
	if !appendOnly[table] {
		now := s.now().UTC()
		stored["created_at"] = now
		stored["updated_at"] = now
	}
	s.tables[table] = append(s.tables[table], stored)
	return export(stored), nil
}

func (s *TableStore) Update(ctx context.Context, table, id string, partial domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, OpUpdate, table); err != nil {
		return nil, err
	}

	values, err := normalize(partial)
	if err != nil {
		return nil, err
	}
	for _, row := range s.tables[table] {
		if row.ID() != id {
			continue
		}
		for k, v := range values {
			if k == "id" {
				continue
			}
			row[k] = v
		}
		if !appendOnly[table] {
			row["updated_at"] = s.now().UTC()
		}
		return export(row), nil
	}
	return nil, fmt.Errorf("%s/%s: %w", table, id, ErrRowNotFound)
}

func (s *TableStore) Delete(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, OpDelete, table); err != nil {
		return err
	}

	rows := s.tables[table]
	for i, row := range rows {
		if row.ID() == id {
			s.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s/%s: %w", table, id, ErrRowNotFound)
}

func (s *TableStore) check(ctx context.Context, op, table string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := s.failures[op+":"+table]; ok {
		return err
	}
	if err, ok := s.failures[op+":"]; ok {
		return err
	}
	return nil
}

func matches(row domain.Record, filters []domain.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(row[f.Column]) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

func compare(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

// normalize deep-copies rec the way a JSON wire would. Timestamps that parse
// as RFC3339 are kept as time.Time so ordering stays chronological.
func normalize(rec domain.Record) (domain.Record, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	out := domain.Record{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	for k, v := range out {
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				out[k] = t
			}
		}
	}
	return out, nil
}

func export(row domain.Record) domain.Record {
	raw, _ := json.Marshal(row)
	out := domain.Record{}
	_ = json.Unmarshal(raw, &out)
	return out
}
