// Package gateway is the generic CRUD path between the domain service and the
// remote table API. Every successful write is followed by exactly one audit
// entry; failed writes are never audited.
package gateway

import (
	"context"
	"fmt"

	"go-hiring-sync/internal/domain"
	"go-hiring-sync/pkg/apperror"
	"go-hiring-sync/pkg/metacodec"
	"go-hiring-sync/pkg/transcoder"

	"go.uber.org/zap"
)

// Fields assigned by the store; never sent on writes.
var storeManaged = []string{"id", "createdAt", "updatedAt"}

// packed lists entities whose reads go through metacodec.Merge.
var packed = map[domain.EntityType]bool{
	domain.EntityInterviews: true,
}

type Gateway struct {
	store   domain.RemoteStore
	auditor domain.AuditRecorder
	log     *zap.Logger
}

func New(store domain.RemoteStore, auditor domain.AuditRecorder, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{store: store, auditor: auditor, log: log}
}

// List returns every row of entity in domain shape, newest first.
func (g *Gateway) List(ctx context.Context, entity domain.EntityType) ([]domain.Record, error) {
	rows, err := g.store.Select(ctx, entity.String(), domain.SelectOptions{
		OrderBy:    "created_at",
		Descending: true,
	})
	if err != nil {
		return nil, remoteErr("select", entity, "", err)
	}
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, g.decode(entity, row))
	}
	return out, nil
}

// Create inserts rec and audits a CREATE entry. Any client id is dropped.
func (g *Gateway) Create(ctx context.Context, entity domain.EntityType, rec domain.Record, actorID string) (domain.Record, error) {
	payload := writable(rec)
	row, err := g.store.Insert(ctx, entity.String(), transcoder.ToStore(entity, payload))
	if err != nil {
		return nil, remoteErr("insert", entity, "", err)
	}
	created := g.decode(entity, row)

	g.auditor.Record(ctx, domain.AuditEntry{
		Action:   domain.ActionCreate,
		Entity:   entity,
		EntityID: created.ID(),
		UserID:   actorID,
		Details:  fmt.Sprintf("Created %s: %s", entity, summary(created)),
	})
	return created, nil
}

// Update applies a partial write and audits an UPDATE entry whose changes are
// the partial as received.
func (g *Gateway) Update(ctx context.Context, entity domain.EntityType, id string, partial domain.Record, actorID string) (domain.Record, error) {
	payload := writable(partial)
	row, err := g.store.Update(ctx, entity.String(), id, transcoder.ToStore(entity, payload))
	if err != nil {
		return nil, remoteErr("update", entity, id, err)
	}
	updated := g.decode(entity, row)

	g.auditor.Record(ctx, domain.AuditEntry{
		Action:   domain.ActionUpdate,
		Entity:   entity,
		EntityID: id,
		UserID:   actorID,
		Details:  fmt.Sprintf("Updated %s: %s", entity, summary(updated)),
		Changes:  partial.Clone(),
	})
	return updated, nil
}

// Delete removes the row and audits a DELETE entry.
func (g *Gateway) Delete(ctx context.Context, entity domain.EntityType, id, actorID string) error {
	if err := g.store.Delete(ctx, entity.String(), id); err != nil {
		return remoteErr("delete", entity, id, err)
	}
	g.auditor.Record(ctx, domain.AuditEntry{
		Action:   domain.ActionDelete,
		Entity:   entity,
		EntityID: id,
		UserID:   actorID,
		Details:  fmt.Sprintf("Deleted %s item %s", entity, id),
	})
	return nil
}

func (g *Gateway) decode(entity domain.EntityType, row domain.Record) domain.Record {
	rec := transcoder.ToDomain(entity, row)
	if !packed[entity] {
		return rec
	}
	merged, err := metacodec.Merge(rec)
	if err != nil {
		g.log.Warn("packed metadata ignored",
			zap.Error(err),
			zap.String("entity", entity.String()),
			zap.String("id", rec.ID()),
		)
	}
	return merged
}

func writable(rec domain.Record) domain.Record {
	out := rec.Clone()
	if out == nil {
		out = domain.Record{}
	}
	for _, k := range storeManaged {
		delete(out, k)
	}
	return out
}

// summary picks a human label for audit details: title, then name, then id.
func summary(rec domain.Record) string {
	for _, k := range []string{"title", "name", "candidateName"} {
		if s := rec.String(k); s != "" {
			return s
		}
	}
	return rec.ID()
}

func remoteErr(op string, entity domain.EntityType, id string, err error) error {
	return &apperror.RemoteStoreError{Op: op, Entity: entity.String(), ID: id, Err: err}
}
