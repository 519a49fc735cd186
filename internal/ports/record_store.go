package ports

import (
	"context"

	"featurestore/internal/types"
)

// RecordStorePort is the uniform record-store surface exposed over a
// feature layer. Every method waits for schema discovery before running.
type RecordStorePort interface {
	// Get returns the record whose identity equals id. The boolean is false,
	// with a nil error, when nothing matches.
	Get(ctx context.Context, id any) (types.Record, bool, error)

	// GetIdentity extracts a record's identity. The boolean is false when
	// the identity field is absent.
	GetIdentity(ctx context.Context, record types.Record) (any, bool, error)

	Put(ctx context.Context, record types.Record, options PutOptions) (any, error)
	Add(ctx context.Context, record types.Record, options PutOptions) (any, error)
	Remove(ctx context.Context, id any) error
	Query(ctx context.Context, query types.QueryRequest, options QueryOptions) ([]types.Record, error)
	Transaction(ctx context.Context) (Transaction, error)
	GetChildren(ctx context.Context, parent types.Record, options QueryOptions) ([]types.Record, error)
	GetMetadata(ctx context.Context, record types.Record) (map[string]any, error)
}

// PutOptions carries the optional arguments of Put and Add.
type PutOptions struct {
	ID        any
	Overwrite *bool
}

// QueryOptions carries result-set options of Query and GetChildren.
type QueryOptions struct {
	Start int
	Count int
	Sort  []SortField
}

// SortField orders a result set by one attribute.
type SortField struct {
	Attribute  string
	Descending bool
}

// Transaction groups store writes.
type Transaction interface {
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
}
