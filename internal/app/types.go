package app

import "featurestore/internal/types"

type InspectRequest struct {
	Settings types.StoreSettings
}

type InspectResult struct {
	StoreID       string
	URL           string
	LayerName     string
	GeometryType  string
	IdentityField string
	Projection    []string
	Capabilities  []types.Capability
	Fields        []types.Field
}

// GetRequest looks a record up by ID, or, when ID is nil, by IDText
// converted to the declared type of the resolved identity field.
type GetRequest struct {
	Settings types.StoreSettings
	ID       any
	IDText   string
}

type GetResult struct {
	Record types.Record
	Found  bool
}

type IdentityRequest struct {
	Settings types.StoreSettings
	Record   types.Record
}

type IdentityResult struct {
	Identity any
	Found    bool
}
