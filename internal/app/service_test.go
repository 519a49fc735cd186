package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featurestore/internal/adapters"
	"featurestore/internal/ports"
	"featurestore/internal/types"
)

type fakeConfigLoader struct {
	settings types.StoreSettings
	err      error
	paths    []string
}

func (f *fakeConfigLoader) Load(path string) (types.StoreSettings, error) {
	f.paths = append(f.paths, path)
	return f.settings, f.err
}

func serviceWith(fake *fakeFeatureService) Service {
	return Service{
		Transport: func(types.StoreSettings) ports.FeatureServicePort {
			return fake
		},
	}
}

func TestServiceInspect(t *testing.T) {
	metadata := mockMetadata("Query,Create,Delete,Update,Editing")
	metadata.Templates = []types.Template{{Name: "Mock"}}
	service := serviceWith(&fakeFeatureService{metadata: metadata})

	result, err := service.Inspect(t.Context(), InspectRequest{
		Settings: types.StoreSettings{Options: types.StoreOptions{
			URL:       "http://localhost/FeatureServer/0",
			OutFields: []string{"NAME", "MISSING"},
		}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.StoreID)
	assert.Equal(t, "http://localhost/FeatureServer/0", result.URL)
	assert.Equal(t, "Mock", result.LayerName)
	assert.Equal(t, "ESRI_OID", result.IdentityField)
	if diff := cmp.Diff([]string{"NAME", "ESRI_OID"}, result.Projection); diff != "" {
		t.Fatalf("unexpected projection (-want +got):\n%s", diff)
	}
	wantCapabilities := []types.Capability{
		types.CapabilityQuery, types.CapabilityCreate, types.CapabilityDelete,
		types.CapabilityUpdate, types.CapabilityEditing,
	}
	if diff := cmp.Diff(wantCapabilities, result.Capabilities); diff != "" {
		t.Fatalf("unexpected capabilities (-want +got):\n%s", diff)
	}
	assert.Len(t, result.Fields, 4)
}

func TestServiceGet(t *testing.T) {
	metadata := mockMetadata("Data,Query")
	fake := &fakeFeatureService{metadata: metadata, features: []types.Record{mockFeature()}}
	service := serviceWith(fake)

	result, err := service.Get(t.Context(), GetRequest{
		Settings: types.StoreSettings{Options: types.StoreOptions{URL: "svc"}},
		ID:       int64(4),
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, "Test Name", result.Record["NAME"])
	require.Len(t, fake.recordedQueries(), 1)
	assert.Equal(t, "ESRI_OID = 4", fake.recordedQueries()[0].Where)
}

func TestServiceGetTypesIdentityText(t *testing.T) {
	tests := []struct {
		name       string
		idProperty string
		idText     string
		wantWhere  string
	}{
		{name: "oid identity is numeric", idText: "4", wantWhere: "ESRI_OID = 4"},
		{name: "string identity keeps leading zeros", idProperty: "NAME", idText: "007", wantWhere: "NAME = '007'"},
		{name: "string identity quotes decimals", idProperty: "NAME", idText: "4.5", wantWhere: "NAME = '4.5'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeFeatureService{metadata: mockMetadata("Data")}
			_, err := serviceWith(fake).Get(t.Context(), GetRequest{
				Settings: types.StoreSettings{Options: types.StoreOptions{URL: "svc", IDProperty: tt.idProperty}},
				IDText:   tt.idText,
			})
			require.NoError(t, err)
			require.Len(t, fake.recordedQueries(), 1)
			assert.Equal(t, tt.wantWhere, fake.recordedQueries()[0].Where)
		})
	}
}

func TestServiceGetRejectsMistypedIdentityText(t *testing.T) {
	fake := &fakeFeatureService{metadata: mockMetadata("Data")}
	_, err := serviceWith(fake).Get(t.Context(), GetRequest{
		Settings: types.StoreSettings{Options: types.StoreOptions{URL: "svc"}},
		IDText:   "abc",
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Empty(t, fake.recordedQueries())
}

func TestServiceGetOpenFailure(t *testing.T) {
	service := serviceWith(&fakeFeatureService{fetchErr: assert.AnError})
	_, err := service.Get(t.Context(), GetRequest{
		Settings: types.StoreSettings{Options: types.StoreOptions{URL: "svc"}},
		ID:       4,
	})
	require.Error(t, err)
	assert.Equal(t, KindInvalidEndpoint, KindOf(err))
}

func TestServiceIdentity(t *testing.T) {
	service := serviceWith(&fakeFeatureService{metadata: mockMetadata("Data")})
	tests := []struct {
		name      string
		flatten   *bool
		record    types.Record
		want      any
		wantFound bool
	}{
		{
			name:      "flat record",
			record:    types.Record{"ESRI_OID": 7.0},
			want:      7.0,
			wantFound: true,
		},
		{
			name:      "wire shape record",
			flatten:   types.Bool(false),
			record:    types.Record{"attributes": map[string]any{"ESRI_OID": 8.0}},
			want:      8.0,
			wantFound: true,
		},
		{
			name:   "missing identity",
			record: types.Record{"NAME": "x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Identity(t.Context(), IdentityRequest{
				Settings: types.StoreSettings{Options: types.StoreOptions{URL: "svc", Flatten: tt.flatten}},
				Record:   tt.record,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, result.Found)
			assert.Equal(t, tt.want, result.Identity)
		})
	}
}

func TestServiceLoadSettings(t *testing.T) {
	loader := &fakeConfigLoader{settings: types.StoreSettings{
		Options: types.StoreOptions{
			URL:        "http://config/0",
			IDProperty: "NAME",
			OutFields:  []string{"NAME"},
		},
		Token:       "config-token",
		HTTPRetries: 5,
	}}
	service := Service{ConfigLoader: loader}

	settings, err := service.LoadSettings("featurestore.yaml", types.StoreSettings{
		Options: types.StoreOptions{
			URL:     "http://flag/0",
			Flatten: types.Bool(false),
		},
		Fixture:        "layers.yaml",
		HTTPTimeoutSec: 9,
	})
	require.NoError(t, err)

	want := types.StoreSettings{
		Options: types.StoreOptions{
			URL:        "http://flag/0",
			IDProperty: "NAME",
			Flatten:    types.Bool(false),
			OutFields:  []string{"NAME"},
		},
		Fixture:        "layers.yaml",
		Token:          "config-token",
		HTTPTimeoutSec: 9,
		HTTPRetries:    5,
	}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Fatalf("unexpected settings (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"featurestore.yaml"}, loader.paths)
}

func TestServiceLoadSettingsError(t *testing.T) {
	loader := &fakeConfigLoader{err: errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("failed to read store config file")}
	_, err := Service{ConfigLoader: loader}.LoadSettings("missing.yaml", types.StoreSettings{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestTransportFor(t *testing.T) {
	fixture := transportFor(types.StoreSettings{Fixture: "layers.yaml"})
	fileAdapter, ok := fixture.(*adapters.FeatureServiceFileAdapter)
	require.True(t, ok)
	assert.Equal(t, "layers.yaml", fileAdapter.Path)

	remote := transportFor(types.StoreSettings{Token: "secret", HTTPRetries: 2})
	httpAdapter, ok := remote.(adapters.FeatureServiceHTTPAdapter)
	require.True(t, ok)
	assert.Equal(t, "secret", httpAdapter.Token)
	assert.Equal(t, 2, httpAdapter.Retries)
}
