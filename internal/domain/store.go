package domain

import "context"

// Filter is an equality condition on a store-shape column.
type Filter struct {
	Column string
	Value  any
}

// SelectOptions narrows a Select call. Filters combine with AND.
type SelectOptions struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
}

// RemoteStore is the hosted table API. Rows are store-shape records. The
// store assigns id, created_at and updated_at; it gives no multi-row
// transactional guarantees.
type RemoteStore interface {
	Select(ctx context.Context, table string, opts SelectOptions) ([]Record, error)
	Insert(ctx context.Context, table string, row Record) (Record, error)
	Update(ctx context.Context, table, id string, partial Record) (Record, error)
	Delete(ctx context.Context, table, id string) error
}

// BlobStore is the attachment storage primitive.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	PublicURL(bucket, path string) string
}

// EntityGateway is the audited CRUD path over the remote store. Records are
// domain shape.
type EntityGateway interface {
	List(ctx context.Context, entity EntityType) ([]Record, error)
	Create(ctx context.Context, entity EntityType, rec Record, actorID string) (Record, error)
	Update(ctx context.Context, entity EntityType, id string, partial Record, actorID string) (Record, error)
	Delete(ctx context.Context, entity EntityType, id, actorID string) error
}
