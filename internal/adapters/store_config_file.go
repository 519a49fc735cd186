package adapters

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"featurestore/internal/ports"
	"featurestore/internal/types"
)

const storeConfigEnvPrefix = "FEATURESTORE"

// StoreConfigFileAdapter reads store settings from a YAML, JSON or TOML
// file, with FEATURESTORE_* environment variables taking precedence.
type StoreConfigFileAdapter struct {
	EnvPrefix string
}

func NewStoreConfigFileAdapter() StoreConfigFileAdapter {
	return StoreConfigFileAdapter{EnvPrefix: storeConfigEnvPrefix}
}

// Load reads path, if not empty, and the environment. Unset booleans and
// out_fields are left nil so StoreOptions defaults apply.
func (a StoreConfigFileAdapter) Load(path string) (types.StoreSettings, error) {
	v := viper.New()
	prefix := a.EnvPrefix
	if prefix == "" {
		prefix = storeConfigEnvPrefix
	}
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return types.StoreSettings{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read store config file").
				WithCause(err)
		}
		log.Debug().Str("path", path).Msg("store config loaded")
	}

	settings := types.StoreSettings{
		Options: types.StoreOptions{
			URL:        strings.TrimSpace(v.GetString("url")),
			IDProperty: strings.TrimSpace(v.GetString("id_property")),
		},
		Fixture:          strings.TrimSpace(v.GetString("fixture")),
		Token:            strings.TrimSpace(v.GetString("token")),
		HTTPTimeoutSec:   v.GetInt("http_timeout_sec"),
		HTTPRetries:      v.GetInt("http_retries"),
		HTTPRetryDelayMs: v.GetInt("http_retry_delay_ms"),
	}
	if v.IsSet("flatten") {
		settings.Options.Flatten = types.Bool(v.GetBool("flatten"))
	}
	if v.IsSet("return_geometry") {
		settings.Options.ReturnGeometry = types.Bool(v.GetBool("return_geometry"))
	}
	if v.IsSet("out_fields") {
		settings.Options.OutFields = splitFieldList(v.GetStringSlice("out_fields"))
	}
	return settings, nil
}

// splitFieldList accepts both list values and a single comma-joined string,
// as environment variables only carry the latter.
func splitFieldList(values []string) []string {
	fields := []string{}
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				fields = append(fields, trimmed)
			}
		}
	}
	return fields
}

var _ ports.StoreConfigPort = StoreConfigFileAdapter{}
