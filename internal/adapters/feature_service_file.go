package adapters

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"featurestore/internal/core"
	"featurestore/internal/ports"
	"featurestore/internal/shared"
	"featurestore/internal/types"
)

// FeatureServiceFixture is the on-disk format read by
// FeatureServiceFileAdapter: layers keyed by endpoint URL. JSON is accepted
// as well since it is valid YAML.
type FeatureServiceFixture struct {
	Layers map[string]FixtureLayer `yaml:"layers"`
}

// FixtureLayer is one offline layer: its metadata and its features in wire
// shape.
type FixtureLayer struct {
	Metadata types.ServiceMetadata `yaml:"metadata"`
	Features []types.Record        `yaml:"features"`
}

// FeatureServiceFileAdapter serves layers from a fixture file instead of the
// network. It understands the `1=1` and `FIELD = literal` predicates.
type FeatureServiceFileAdapter struct {
	Path   string
	mu     sync.Mutex
	cached map[string]FixtureLayer
	loaded bool
}

func NewFeatureServiceFileAdapter(path string) *FeatureServiceFileAdapter {
	return &FeatureServiceFileAdapter{Path: path}
}

func (a *FeatureServiceFileAdapter) FetchMetadata(ctx context.Context, endpoint string) (types.ServiceMetadata, error) {
	layer, err := a.layer(endpoint)
	if err != nil {
		return types.ServiceMetadata{}, err
	}
	return layer.Metadata, nil
}

func (a *FeatureServiceFileAdapter) Query(ctx context.Context, endpoint string, query types.QueryRequest) (types.FeatureSet, error) {
	layer, err := a.layer(endpoint)
	if err != nil {
		return types.FeatureSet{}, err
	}
	predicate, err := parseEqualityPredicate(query.Where)
	if err != nil {
		return types.FeatureSet{}, err
	}
	result := types.FeatureSet{
		ObjectIDFieldName: layer.Metadata.ObjectIDField,
		GeometryType:      layer.Metadata.GeometryType,
		Features:          []types.Record{},
	}
	for _, feature := range layer.Features {
		if !predicate.matches(feature) {
			continue
		}
		result.Features = append(result.Features, projectFeature(feature, query))
	}
	log.Debug().
		Str("url", endpoint).
		Str("where", query.Where).
		Int("matches", len(result.Features)).
		Msg("fixture query evaluated")
	return result, nil
}

func (a *FeatureServiceFileAdapter) layer(endpoint string) (FixtureLayer, error) {
	layers, err := a.load()
	if err != nil {
		return FixtureLayer{}, err
	}
	layer, ok := layers[shared.NormalizeEndpoint(endpoint)]
	if !ok {
		return FixtureLayer{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no fixture layer for endpoint: " + endpoint)
	}
	return layer, nil
}

func (a *FeatureServiceFileAdapter) load() (map[string]FixtureLayer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("fixture file not found").
			WithCause(err)
	}
	var fixture FeatureServiceFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid fixture format").
			WithCause(err)
	}
	layers := make(map[string]FixtureLayer, len(fixture.Layers))
	for endpoint, layer := range fixture.Layers {
		key := shared.NormalizeEndpoint(endpoint)
		if key == "" {
			continue
		}
		layers[key] = layer
	}
	a.cached = layers
	a.loaded = true
	return a.cached, nil
}

var equalityPattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*=\s*(.+?)\s*$`)

type equalityPredicate struct {
	all    bool
	field  string
	text   string
	number float64
	quoted bool
}

func parseEqualityPredicate(where string) (equalityPredicate, error) {
	trimmed := strings.TrimSpace(where)
	if trimmed == "" || strings.ReplaceAll(trimmed, " ", "") == "1=1" {
		return equalityPredicate{all: true}, nil
	}
	match := equalityPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return equalityPredicate{}, unsupportedWhere(where)
	}
	raw := match[2]
	if len(raw) >= 2 && strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'") {
		return equalityPredicate{
			field:  match[1],
			text:   strings.ReplaceAll(raw[1:len(raw)-1], "''", "'"),
			quoted: true,
		}, nil
	}
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return equalityPredicate{}, unsupportedWhere(where)
	}
	return equalityPredicate{field: match[1], number: number}, nil
}

func unsupportedWhere(where string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unsupported where clause for fixture service: " + where)
}

func (p equalityPredicate) matches(feature types.Record) bool {
	if p.all {
		return true
	}
	value, ok := core.IdentityOf(feature, p.field, false)
	if !ok {
		return false
	}
	if p.quoted {
		text, isText := value.(string)
		return isText && text == p.text
	}
	number, isNumber := toFloat(value)
	return isNumber && number == p.number
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	}
	return 0, false
}

func projectFeature(feature types.Record, query types.QueryRequest) types.Record {
	out := feature.Clone()
	if !query.ReturnGeometry {
		delete(out, types.GeometryKey)
	}
	if types.IsAllFields(query.OutFields) {
		return out
	}
	attrs, ok := types.AttributesOf(out)
	if !ok {
		return out
	}
	projected := make(map[string]any, len(query.OutFields))
	for _, name := range query.OutFields {
		if value, exists := attrs[name]; exists {
			projected[name] = value
		}
	}
	out[types.AttributesKey] = projected
	return out
}

var _ ports.FeatureServicePort = (*FeatureServiceFileAdapter)(nil)
