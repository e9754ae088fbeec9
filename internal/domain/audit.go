package domain

import (
	"context"
	"time"
)

// Audit actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
)

// AuditEntry is one append-only line of the audit trail.
type AuditEntry struct {
	ID        string         `json:"id,omitempty"`
	Action    string         `json:"action"`
	Entity    EntityType     `json:"entity"`
	EntityID  string         `json:"entityId"`
	UserID    string         `json:"userId,omitempty"`
	Details   string         `json:"details"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// AuditFilter narrows an audit query. Empty fields do not filter.
type AuditFilter struct {
	Entity   EntityType `form:"entity" json:"entity,omitempty"`
	EntityID string     `form:"entityId" json:"entityId,omitempty"`
	UserID   string     `form:"userId" json:"userId,omitempty"`
	Action   string     `form:"action" json:"action,omitempty"`
}

// AuditRecorder appends entries; Record never fails the caller.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
	Query(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)
}

type AuditUsecase interface {
	GetAuditLog(ctx context.Context, filter AuditFilter) ([]AuditEntry, error)
	ExportAuditLog(ctx context.Context, filter AuditFilter, format string) ([]byte, string, error)
}
