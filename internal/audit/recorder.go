package audit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/transcoder"

	"go.uber.org/zap"
)

// Spool holds entries whose write failed until Replay can persist them.
type Spool interface {
	Push(ctx context.Context, entry domain.AuditEntry) error
	Pop(ctx context.Context) (domain.AuditEntry, bool, error)
}

// Recorder writes audit entries straight to the audit_log table. It does not
// go through the gateway, so recording never produces audit entries itself.
type Recorder struct {
	store domain.RemoteStore
	log   *zap.Logger
	spool Spool
	now   func() time.Time
}

type Option func(*Recorder)

func WithSpool(s Spool) Option {
	return func(r *Recorder) { r.spool = s }
}

func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

func NewRecorder(store domain.RemoteStore, log *zap.Logger, opts ...Option) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Recorder{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record persists entry. Failures are logged and spooled, never returned.
func (r *Recorder) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}
	err := r.write(ctx, entry)
	if err == nil {
		return
	}

	failure := &apperror.AuditWriteFailure{
		Action:   entry.Action,
		Entity:   entry.Entity.String(),
		EntityID: entry.EntityID,
		Err:      err,
	}
	if r.spool != nil {
		if spoolErr := r.spool.Push(ctx, entry); spoolErr != nil {
			r.log.Error("audit spool push failed", zap.Error(spoolErr))
		} else {
			failure.Spooled = true
		}
	}
	r.log.Warn("audit entry not persisted",
		zap.Error(failure),
		zap.String("action", entry.Action),
		zap.String("entity", entry.Entity.String()),
		zap.String("entity_id", entry.EntityID),
		zap.Bool("spooled", failure.Spooled),
	)
}

// Replay drains the spool into the store and returns how many entries were
// written. An entry that fails again goes back to the spool and stops the run.
func (r *Recorder) Replay(ctx context.Context) (int, error) {
	if r.spool == nil {
		return 0, nil
	}
	replayed := 0
	for {
		if err := ctx.Err(); err != nil {
			return replayed, err
		}
		entry, ok, err := r.spool.Pop(ctx)
		if err != nil {
			return replayed, fmt.Errorf("pop audit spool: %w", err)
		}
		if !ok {
			return replayed, nil
		}
		if err := r.write(ctx, entry); err != nil {
			if pushErr := r.spool.Push(ctx, entry); pushErr != nil {
				r.log.Error("audit entry lost during replay",
					zap.Error(pushErr),
					zap.String("action", entry.Action),
					zap.String("entity_id", entry.EntityID),
				)
			}
			return replayed, err
		}
		replayed++
	}
}

// Query returns entries matching every non-empty filter field, newest first.
func (r *Recorder) Query(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	opts := domain.SelectOptions{
		OrderBy:    "timestamp",
		Descending: true,
	}
	add := func(field string, value string) {
		if value != "" {
			opts.Filters = append(opts.Filters, domain.Filter{
				Column: transcoder.StoreColumn(domain.EntityAuditLog, field),
				Value:  value,
			})
		}
	}
	add("entity", filter.Entity.String())
	add("entityId", filter.EntityID)
	add("userId", filter.UserID)
	add("action", filter.Action)

	rows, err := r.store.Select(ctx, domain.EntityAuditLog.String(), opts)
	if err != nil {
		return nil, &apperror.RemoteStoreError{Op: "select", Entity: domain.EntityAuditLog.String(), Err: err}
	}

	recs := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, transcoder.ToDomain(domain.EntityAuditLog, row))
	}
	entries, err := domain.FromRecords[domain.AuditEntry](recs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}

func (r *Recorder) write(ctx context.Context, entry domain.AuditEntry) error {
	rec, err := domain.ToRecord(entry)
	if err != nil {
		return err
	}
	delete(rec, "id")
	_, err = r.store.Insert(ctx, domain.EntityAuditLog.String(), transcoder.ToStore(domain.EntityAuditLog, rec))
	return err
}
