package app

import (
	"context"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	store, err := s.Open(ctx, req.Settings)
	if err != nil {
		return InspectResult{}, err
	}
	config, err := store.Config(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	metadata, err := store.ServiceMetadata(ctx)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{
		StoreID:       store.ID(),
		URL:           config.URL,
		LayerName:     metadata.Name,
		GeometryType:  metadata.GeometryType,
		IdentityField: config.IdentityField,
		Projection:    config.Projection,
		Capabilities:  config.Capabilities.List(),
		Fields:        metadata.Fields,
	}, nil
}
