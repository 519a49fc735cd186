package integration

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featurestore/internal/app"
	"featurestore/internal/types"
	"featurestore/tests/testutil"
)

func TestMapServiceStoreIntegration(t *testing.T) {
	server := testutil.NewMockLayerServer(t)
	store, err := app.NewHTTPStore(types.StoreOptions{URL: server.URL + testutil.MapServicePath})
	require.NoError(t, err)

	config, err := store.Config(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ESRI_OID", config.IdentityField)
	assert.Equal(t, []string{types.AllFields}, config.Projection)
	assert.True(t, config.Capabilities.Has(types.CapabilityQuery))
	assert.False(t, config.Capabilities.Has(types.CapabilityData))
	assert.Equal(t, types.LifecycleReady, store.Lifecycle())

	_, _, err = store.Get(t.Context(), 4)
	require.Error(t, err)
	assert.Equal(t, app.KindUnsupportedOperation, app.KindOf(err))
	assert.Equal(t, 0, server.QueryCount())
}

func TestFeatureServiceStoreIntegration(t *testing.T) {
	server := testutil.NewMockLayerServer(t)
	store, err := app.NewHTTPStore(types.StoreOptions{
		URL:       server.URL + testutil.FeatureServicePath,
		OutFields: []string{"NAME", "CATEGORY", "UNKNOWN"},
	})
	require.NoError(t, err)

	record, found, err := store.Get(t.Context(), 4)
	require.NoError(t, err)
	require.True(t, found)
	want := types.Record{
		"ESRI_OID": float64(4),
		"NAME":     "Test Name",
		"CATEGORY": "Test Category",
		"geometry": map[string]any{"x": float64(4), "y": float64(14)},
	}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}

	identity, ok, err := store.GetIdentity(t.Context(), record)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(4), identity)

	_, found, err = store.Get(t.Context(), 99)
	require.NoError(t, err)
	assert.False(t, found)

	var where, outFields []string
	for _, req := range server.Requests() {
		if req.URL.Path == testutil.FeatureServicePath+"/query" {
			where = append(where, req.Form.Get("where"))
			outFields = append(outFields, req.Form.Get("outFields"))
		}
	}
	assert.Equal(t, []string{"ESRI_OID = 4", "ESRI_OID = 99"}, where)
	assert.Equal(t, []string{"NAME,CATEGORY,ESRI_OID", "NAME,CATEGORY,ESRI_OID"}, outFields)
}

func TestConcurrentGetsWaitForSchemaIntegration(t *testing.T) {
	server := testutil.NewMockLayerServer(t)
	store, err := app.NewHTTPStore(types.StoreOptions{URL: server.URL + testutil.FeatureServicePath})
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, found, err := store.Get(t.Context(), 4)
			if err == nil && !found {
				t.Errorf("expected record to be found")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	metadataCalls := 0
	for _, req := range server.Requests() {
		if req.URL.Path == testutil.FeatureServicePath {
			metadataCalls++
		}
	}
	assert.Equal(t, 1, metadataCalls)
	assert.Equal(t, callers, server.QueryCount())
}

func TestUnreachableEndpointIntegration(t *testing.T) {
	server := testutil.NewMockLayerServer(t)
	endpoint := server.URL + testutil.FeatureServicePath
	server.Close()

	store, err := app.NewStore(types.StoreOptions{URL: endpoint}, nil)
	require.Error(t, err)
	assert.Nil(t, store)

	service := app.NewService()
	settings := types.StoreSettings{
		Options:     types.StoreOptions{URL: endpoint},
		HTTPRetries: 1,
	}
	_, err = service.Inspect(t.Context(), app.InspectRequest{Settings: settings})
	require.Error(t, err)
	assert.Equal(t, app.KindInvalidEndpoint, app.KindOf(err))
}
