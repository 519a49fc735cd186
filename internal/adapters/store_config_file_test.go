package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featurestore/internal/types"
)

func TestStoreConfigFileAdapterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "featurestore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: http://localhost/arcgis/rest/services/Mock/FeatureServer/0
id_property: NAME
flatten: false
out_fields: [NAME, CATEGORY]
http_timeout_sec: 12
http_retries: 2
`), 0644))

	settings, err := NewStoreConfigFileAdapter().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/arcgis/rest/services/Mock/FeatureServer/0", settings.Options.URL)
	assert.Equal(t, "NAME", settings.Options.IDProperty)
	require.NotNil(t, settings.Options.Flatten)
	assert.False(t, *settings.Options.Flatten)
	assert.Nil(t, settings.Options.ReturnGeometry, "unset booleans keep their default")
	if diff := cmp.Diff([]string{"NAME", "CATEGORY"}, settings.Options.OutFields); diff != "" {
		t.Fatalf("unexpected out fields (-want +got):\n%s", diff)
	}
	assert.Equal(t, 12, settings.HTTPTimeoutSec)
	assert.Equal(t, 2, settings.HTTPRetries)
}

func TestStoreConfigFileAdapterEnvironment(t *testing.T) {
	t.Setenv("FEATURESTORE_URL", "http://env/layer/0")
	t.Setenv("FEATURESTORE_OUT_FIELDS", "NAME,ESRI_OID")
	t.Setenv("FEATURESTORE_RETURN_GEOMETRY", "false")

	settings, err := NewStoreConfigFileAdapter().Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env/layer/0", settings.Options.URL)
	assert.Equal(t, []string{"NAME", "ESRI_OID"}, settings.Options.OutFields)
	require.NotNil(t, settings.Options.ReturnGeometry)
	assert.False(t, *settings.Options.ReturnGeometry)
	assert.Nil(t, settings.Options.Flatten)
}

func TestStoreConfigFileAdapterMissingFile(t *testing.T) {
	_, err := NewStoreConfigFileAdapter().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestStoreConfigFileAdapterDefaultsApply(t *testing.T) {
	settings, err := NewStoreConfigFileAdapter().Load("")
	require.NoError(t, err)
	opts := settings.Options.WithDefaults()
	assert.Equal(t, types.DefaultIDProperty, opts.IDProperty)
	assert.True(t, opts.FlattenEnabled())
	assert.Equal(t, []string{types.AllFields}, opts.OutFields)
}
