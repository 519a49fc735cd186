package app

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"featurestore/internal/core"
	"featurestore/internal/ports"
	"featurestore/internal/types"
)

// Store exposes a remote feature layer as a record store. Construction
// starts a one-time metadata fetch; every operation waits for it before
// running and fails with the fetch error if it failed.
type Store struct {
	id      string
	options types.StoreOptions
	service ports.FeatureServicePort
	signal  *core.Readiness
	state   atomic.Int32
	logger  zerolog.Logger

	// Written once before signal resolves, read-only afterwards.
	config   types.StoreConfig
	metadata types.ServiceMetadata
}

const (
	stateUnresolved int32 = iota
	stateResolving
	stateReady
	stateFailed
)

// NewStore validates opts, applies defaults and issues the metadata fetch
// through service. An empty URL fails with MissingEndpoint before any
// request is made.
func NewStore(opts types.StoreOptions, service ports.FeatureServicePort) (*Store, error) {
	endpoint := strings.TrimSpace(opts.URL)
	if endpoint == "" {
		return nil, missingEndpointError()
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, invalidEndpointError(err)
	}
	if service == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("feature service transport is required")
	}

	options := opts.WithDefaults()
	options.URL = endpoint
	id := uuid.Must(uuid.NewV7()).String()
	s := &Store{
		id:      id,
		options: options,
		service: service,
		signal:  core.NewReadiness(),
		logger:  log.With().Str("store", id).Str("url", endpoint).Logger(),
	}
	s.state.Store(stateUnresolved)
	s.start()
	return s, nil
}

// NewHTTPStore builds a store backed by the REST transport with default
// timeouts and retries.
func NewHTTPStore(opts types.StoreOptions) (*Store, error) {
	return NewStore(opts, defaultTransport())
}

func (s *Store) start() {
	s.state.Store(stateResolving)
	s.logger.Debug().Msg("fetching service metadata")
	// Detached from callers: the fetch always runs to completion.
	go s.initialize(context.Background())
}

func (s *Store) initialize(ctx context.Context) {
	metadata, err := s.service.FetchMetadata(ctx, s.options.URL)
	if err != nil {
		failure := invalidEndpointError(err)
		s.state.Store(stateFailed)
		s.signal.Fail(failure)
		s.logger.Warn().Err(err).Msg("service metadata fetch failed")
		return
	}

	resolved := core.ResolveSchema(metadata, s.options)
	assert.NotEmpty(ctx, strings.Join(resolved.Projection, ","), "resolved projection must not be empty")
	s.metadata = metadata
	s.config = types.StoreConfig{
		URL:            s.options.URL,
		IdentityField:  resolved.IdentityField,
		Projection:     resolved.Projection,
		Flatten:        s.options.FlattenEnabled(),
		ReturnGeometry: s.options.ReturnGeometryEnabled(),
		Capabilities:   resolved.Capabilities,
	}
	if len(resolved.DroppedFields) > 0 {
		s.logger.Debug().
			Strs("fields", resolved.DroppedFields).
			Msg("requested out fields not present in service")
	}
	s.state.Store(stateReady)
	s.signal.Resolve()
	s.logger.Debug().
		Str("identity_field", resolved.IdentityField).
		Str("identity_source", string(resolved.IdentitySource)).
		Strs("projection", resolved.Projection).
		Str("capabilities", resolved.Capabilities.String()).
		Msg("store ready")
}

// await blocks until schema discovery finished and returns its failure, if
// any. Once the store is ready it returns immediately.
func (s *Store) await(ctx context.Context) error {
	if s.signal.Fired() {
		return s.signal.Err()
	}
	return s.signal.Wait(ctx)
}

// ID returns the instance id used to correlate log lines.
func (s *Store) ID() string {
	return s.id
}

// Options returns the construction options with defaults applied.
func (s *Store) Options() types.StoreOptions {
	out := s.options
	out.OutFields = append([]string(nil), s.options.OutFields...)
	return out
}

// Lifecycle reports the initialization state without blocking.
func (s *Store) Lifecycle() types.Lifecycle {
	switch s.state.Load() {
	case stateResolving:
		return types.LifecycleResolving
	case stateReady:
		return types.LifecycleReady
	case stateFailed:
		return types.LifecycleFailed
	}
	return types.LifecycleUnresolved
}

// Ready is closed once schema discovery finished, successfully or not.
func (s *Store) Ready() <-chan struct{} {
	return s.signal.Done()
}

// Config returns the resolved configuration.
func (s *Store) Config(ctx context.Context) (types.StoreConfig, error) {
	if err := s.await(ctx); err != nil {
		return types.StoreConfig{}, err
	}
	out := s.config
	out.Projection = append([]string(nil), s.config.Projection...)
	return out, nil
}

// ServiceMetadata returns the layer description fetched at construction.
func (s *Store) ServiceMetadata(ctx context.Context) (types.ServiceMetadata, error) {
	if err := s.await(ctx); err != nil {
		return types.ServiceMetadata{}, err
	}
	return s.metadata, nil
}

// Get fetches the record whose identity field equals id. It returns false
// with a nil error when no record matches.
func (s *Store) Get(ctx context.Context, id any) (types.Record, bool, error) {
	if err := s.await(ctx); err != nil {
		return nil, false, err
	}
	required := types.CapabilityData
	if s.metadata.HasTemplates() {
		required = types.CapabilityQuery
	}
	if !s.config.Capabilities.Has(required) {
		return nil, false, unsupportedOperationError("get")
	}

	query := types.QueryRequest{
		Where:          core.EqualityWhere(s.config.IdentityField, id),
		OutFields:      s.config.Projection,
		ReturnGeometry: s.config.ReturnGeometry,
	}
	featureSet, err := s.service.Query(ctx, s.config.URL, query)
	if err != nil {
		return nil, false, err
	}
	if len(featureSet.Features) == 0 {
		s.logger.Debug().Str("where", query.Where).Msg("no feature matched")
		return nil, false, nil
	}
	record := featureSet.Features[0]
	if s.config.Flatten {
		record = core.Flatten(record)
	}
	return record, true, nil
}

// GetIdentity reads the identity field of record, from the top level when
// the store flattens records and from attributes otherwise.
func (s *Store) GetIdentity(ctx context.Context, record types.Record) (any, bool, error) {
	if err := s.await(ctx); err != nil {
		return nil, false, err
	}
	value, ok := core.IdentityOf(record, s.config.IdentityField, s.config.Flatten)
	return value, ok, nil
}

// Unflatten converts record to the wire shape using the resolved
// projection.
func (s *Store) Unflatten(ctx context.Context, record types.Record) (types.Record, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	var known []string
	if s.config.ProjectsAllFields() {
		known = s.metadata.FieldNames()
	}
	return core.Unflatten(record, s.config.Projection, known), nil
}

// Put stores a record. Not implemented yet.
func (s *Store) Put(ctx context.Context, record types.Record, options ports.PutOptions) (any, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	return nil, notImplementedError("put")
}

// Add creates a record, failing if it exists. Not implemented yet.
func (s *Store) Add(ctx context.Context, record types.Record, options ports.PutOptions) (any, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	return nil, notImplementedError("add")
}

// Remove deletes a record by identity. Not implemented yet.
func (s *Store) Remove(ctx context.Context, id any) error {
	if err := s.await(ctx); err != nil {
		return err
	}
	return notImplementedError("remove")
}

// Query returns the records matching query. Not implemented yet.
func (s *Store) Query(ctx context.Context, query types.QueryRequest, options ports.QueryOptions) ([]types.Record, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	return nil, notImplementedError("query")
}

// Transaction starts a write transaction. Not implemented yet.
func (s *Store) Transaction(ctx context.Context) (ports.Transaction, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	return nil, notImplementedError("transaction")
}

// GetChildren returns the children of parent. Not implemented yet.
func (s *Store) GetChildren(ctx context.Context, parent types.Record, options ports.QueryOptions) ([]types.Record, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	return nil, notImplementedError("getChildren")
}

// GetMetadata returns per-record metadata. Not implemented yet.
func (s *Store) GetMetadata(ctx context.Context, record types.Record) (map[string]any, error) {
	if err := s.await(ctx); err != nil {
		return nil, err
	}
	return nil, notImplementedError("getMetadata")
}

var _ ports.RecordStorePort = (*Store)(nil)
