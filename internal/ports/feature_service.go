package ports

import (
	"context"

	"featurestore/internal/types"
)

// FeatureServicePort is the transport to a remote feature layer.
type FeatureServicePort interface {
	// FetchMetadata requests `{endpoint}?f=json` and decodes the layer
	// description.
	FetchMetadata(ctx context.Context, endpoint string) (types.ServiceMetadata, error)

	// Query requests `{endpoint}/query` with the given parameters and
	// returns the decoded feature set.
	Query(ctx context.Context, endpoint string, query types.QueryRequest) (types.FeatureSet, error)
}
