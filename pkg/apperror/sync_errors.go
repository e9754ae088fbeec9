package apperror

import (
	"fmt"
	"strings"
)

// RemoteStoreError wraps any failure of the remote table or blob call itself
// (network, auth, constraint violation, timeout). It is never retried here.
type RemoteStoreError struct {
	Op     string // select, insert, update, delete, upload
	Entity string
	ID     string
	Err    error
}

func (e *RemoteStoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("remote store %s %s/%s failed: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("remote store %s %s failed: %v", e.Op, e.Entity, e.Err)
}

func (e *RemoteStoreError) Unwrap() error {
	return e.Err
}

// MappingError reports a packed metadata block that could not be decoded.
// It is contained by the caller and only ever logged.
type MappingError struct {
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("metadata in %q could not be decoded: %v", e.Field, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Blocker names one referencing entity that prevented an operation.
type Blocker struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

// ReferentialViolation is a failed business-rule guard. Message is meant to be
// shown to the user as is.
type ReferentialViolation struct {
	Entity   string    `json:"entity"`
	ID       string    `json:"id"`
	Message  string    `json:"message"`
	Blockers []Blocker `json:"blockers,omitempty"`
}

func (e *ReferentialViolation) Error() string {
	return e.Message
}

// BlockerIDs returns the ids of the blocking entities, in order.
func (e *ReferentialViolation) BlockerIDs() []string {
	ids := make([]string, 0, len(e.Blockers))
	for _, b := range e.Blockers {
		ids = append(ids, b.ID)
	}
	return ids
}

func NewReferentialViolation(entity, id, message string, blockers ...Blocker) *ReferentialViolation {
	return &ReferentialViolation{
		Entity:   entity,
		ID:       id,
		Message:  message,
		Blockers: blockers,
	}
}

// AuditWriteFailure is logged when an audit entry could not be persisted after
// the primary write already succeeded. It never reaches the caller.
type AuditWriteFailure struct {
	Action   string
	Entity   string
	EntityID string
	Spooled  bool
	Err      error
}

func (e *AuditWriteFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "audit write for %s %s/%s failed: %v", e.Action, e.Entity, e.EntityID, e.Err)
	if e.Spooled {
		b.WriteString(" (spooled for replay)")
	}
	return b.String()
}

func (e *AuditWriteFailure) Unwrap() error {
	return e.Err
}
