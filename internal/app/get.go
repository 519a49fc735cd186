package app

import (
	"context"

	"featurestore/internal/core"
)

func (s Service) Get(ctx context.Context, req GetRequest) (GetResult, error) {
	store, err := s.Open(ctx, req.Settings)
	if err != nil {
		return GetResult{}, err
	}
	id := req.ID
	if id == nil {
		id, err = typedIdentity(ctx, store, req.IDText)
		if err != nil {
			return GetResult{}, err
		}
	}
	record, found, err := store.Get(ctx, id)
	if err != nil {
		return GetResult{}, err
	}
	return GetResult{Record: record, Found: found}, nil
}

func (s Service) Identity(ctx context.Context, req IdentityRequest) (IdentityResult, error) {
	store, err := s.Open(ctx, req.Settings)
	if err != nil {
		return IdentityResult{}, err
	}
	identity, found, err := store.GetIdentity(ctx, req.Record)
	if err != nil {
		return IdentityResult{}, err
	}
	return IdentityResult{Identity: identity, Found: found}, nil
}

func typedIdentity(ctx context.Context, store *Store, raw string) (any, error) {
	config, err := store.Config(ctx)
	if err != nil {
		return nil, err
	}
	metadata, err := store.ServiceMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return core.TypedIdentity(metadata, config.IdentityField, raw)
}
