package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-hiring-sync/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var ErrRowNotFound = errors.New("row not found")

// DB is the subset of *pgxpool.Pool the table store needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// tables whose rows carry no updated_at column
var appendOnly = map[string]bool{
	domain.EntityAuditLog.String(): true,
}

// TableStore exposes every table through the generic select/insert/update/
// delete API. Column names come from callers, so every identifier is quoted.
type TableStore struct {
	db DB
}

func NewTableStore(db DB) *TableStore {
	return &TableStore{db: db}
}

func (s *TableStore) Select(ctx context.Context, table string, opts domain.SelectOptions) ([]domain.Record, error) {
	query, args := buildSelect(table, opts)
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *TableStore) Insert(ctx context.Context, table string, row domain.Record) (domain.Record, error) {
	query, args, err := buildInsert(table, row)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return one(rows, table, "")
}

func (s *TableStore) Update(ctx context.Context, table, id string, partial domain.Record) (domain.Record, error) {
	query, args, err := buildUpdate(table, id, partial)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return one(rows, table, id)
}

func (s *TableStore) Delete(ctx context.Context, table, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", pq.QuoteIdentifier(table))
	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", table, id, ErrRowNotFound)
	}
	return nil
}

func buildSelect(table string, opts domain.SelectOptions) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s", pq.QuoteIdentifier(table))

	args := make([]any, 0, len(opts.Filters))
	for i, f := range opts.Filters {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		args = append(args, f.Value)
		fmt.Fprintf(&b, "%s = $%d", pq.QuoteIdentifier(f.Column), len(args))
	}

	if opts.OrderBy != "" {
		fmt.Fprintf(&b, " ORDER BY %s", pq.QuoteIdentifier(opts.OrderBy))
		if opts.Descending {
			b.WriteString(" DESC")
		}
	}
	return b.String(), args
}

func buildInsert(table string, row domain.Record) (string, []any, error) {
	cols := sortedKeys(row)
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING *", pq.QuoteIdentifier(table)), nil, nil
	}

	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		v, err := param(row[c])
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", c, err)
		}
		quoted[i] = pq.QuoteIdentifier(c)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = v
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(params, ", "))
	return query, args, nil
}

func buildUpdate(table, id string, partial domain.Record) (string, []any, error) {
	cols := sortedKeys(partial)
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		if c == "id" || c == "updated_at" {
			continue
		}
		v, err := param(partial[c])
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", c, err)
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), len(args)))
	}
	if !appendOnly[table] {
		sets = append(sets, "updated_at = now()")
	}
	if len(sets) == 0 {
		return "", nil, errors.New("empty update")
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING *",
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), len(args))
	return query, args, nil
}

// param sends maps and slices as JSON text so they land in jsonb columns under
// both the simple and the extended query protocol.
func param(v any) (any, error) {
	switch v.(type) {
	case map[string]any, domain.Record, []any, []string, []int, []map[string]any:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(raw), nil
	}
	return v, nil
}

func sortedKeys(rec domain.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collect(rows pgx.Rows) ([]domain.Record, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(maps))
	for _, m := range maps {
		out = append(out, domain.Record(m))
	}
	return out, nil
}

func one(rows pgx.Rows, table, id string) (domain.Record, error) {
	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", table, id, ErrRowNotFound)
	}
	if err != nil {
		return nil, err
	}
	return domain.Record(m), nil
}
