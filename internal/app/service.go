package app

import (
	"context"
	"strings"

	"featurestore/internal/adapters"
	"featurestore/internal/ports"
	"featurestore/internal/types"
)

type Service struct {
	ConfigLoader ports.StoreConfigPort
	Transport    func(settings types.StoreSettings) ports.FeatureServicePort
}

func NewService() Service {
	return Service{
		ConfigLoader: adapters.NewStoreConfigFileAdapter(),
		Transport:    transportFor,
	}
}

func defaultTransport() ports.FeatureServicePort {
	return adapters.NewFeatureServiceHTTPAdapter(0, 0, 0)
}

// transportFor picks the fixture transport when a fixture file is
// configured and the REST transport otherwise.
func transportFor(settings types.StoreSettings) ports.FeatureServicePort {
	if strings.TrimSpace(settings.Fixture) != "" {
		return adapters.NewFeatureServiceFileAdapter(settings.Fixture)
	}
	transport := adapters.NewFeatureServiceHTTPAdapter(settings.HTTPTimeoutSec, settings.HTTPRetries, settings.HTTPRetryDelayMs)
	transport.Token = settings.Token
	return transport
}

// Open builds a store from settings and waits until it is ready.
func (s Service) Open(ctx context.Context, settings types.StoreSettings) (*Store, error) {
	newTransport := s.Transport
	if newTransport == nil {
		newTransport = transportFor
	}
	store, err := NewStore(settings.Options, newTransport(settings))
	if err != nil {
		return nil, err
	}
	if _, err := store.Config(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadSettings reads the config file, if any, and overlays request values.
func (s Service) LoadSettings(configPath string, overrides types.StoreSettings) (types.StoreSettings, error) {
	settings := types.StoreSettings{}
	if s.ConfigLoader != nil {
		loaded, err := s.ConfigLoader.Load(configPath)
		if err != nil {
			return types.StoreSettings{}, err
		}
		settings = loaded
	}
	return mergeSettings(settings, overrides), nil
}

func mergeSettings(base types.StoreSettings, overrides types.StoreSettings) types.StoreSettings {
	out := base
	if overrides.Options.URL != "" {
		out.Options.URL = overrides.Options.URL
	}
	if overrides.Options.IDProperty != "" {
		out.Options.IDProperty = overrides.Options.IDProperty
	}
	if overrides.Options.Flatten != nil {
		out.Options.Flatten = overrides.Options.Flatten
	}
	if overrides.Options.ReturnGeometry != nil {
		out.Options.ReturnGeometry = overrides.Options.ReturnGeometry
	}
	if overrides.Options.OutFields != nil {
		out.Options.OutFields = overrides.Options.OutFields
	}
	if overrides.Fixture != "" {
		out.Fixture = overrides.Fixture
	}
	if overrides.Token != "" {
		out.Token = overrides.Token
	}
	if overrides.HTTPTimeoutSec > 0 {
		out.HTTPTimeoutSec = overrides.HTTPTimeoutSec
	}
	if overrides.HTTPRetries > 0 {
		out.HTTPRetries = overrides.HTTPRetries
	}
	if overrides.HTTPRetryDelayMs > 0 {
		out.HTTPRetryDelayMs = overrides.HTTPRetryDelayMs
	}
	return out
}
