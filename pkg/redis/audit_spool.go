package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-hiring-sync/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultSpoolKey is the list holding audit entries waiting for replay.
const DefaultSpoolKey = "hiring:audit:spool"

// AuditSpool is a FIFO of audit entries backed by a Redis list.
type AuditSpool struct {
	client *redis.Client
	key    string
}

func NewAuditSpool(client *redis.Client, key string) *AuditSpool {
	if key == "" {
		key = DefaultSpoolKey
	}
	return &AuditSpool{client: client, key: key}
}

func (s *AuditSpool) Push(ctx context.Context, entry domain.AuditEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode spooled audit entry: %w", err)
	}
	return s.client.LPush(ctx, s.key, raw).Err()
}

// Pop removes the oldest entry. ok is false when the spool is empty.
func (s *AuditSpool) Pop(ctx context.Context) (domain.AuditEntry, bool, error) {
	var entry domain.AuditEntry
	raw, err := s.client.RPop(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, err
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry, false, fmt.Errorf("decode spooled audit entry: %w", err)
	}
	return entry, true, nil
}

func (s *AuditSpool) Len(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, s.key).Result()
}
