package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"featurestore/internal/app"
	"featurestore/internal/types"
)

type storeFlags struct {
	URL              string
	IDProperty       string
	OutFields        []string
	Flatten          bool
	ReturnGeometry   bool
	Fixture          string
	Token            string
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func addStoreFlags(cmd *cobra.Command, opts *storeFlags) {
	defaults := types.DefaultStoreOptions()
	cmd.Flags().StringVar(&opts.URL, "url", "", "Layer endpoint URL")
	cmd.Flags().StringVar(&opts.IDProperty, "id-property", defaults.IDProperty, "Identity field requested before metadata resolution")
	cmd.Flags().StringSliceVar(&opts.OutFields, "out-fields", defaults.OutFields, "Fields to return (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&opts.Flatten, "flatten", defaults.FlattenEnabled(), "Lift attributes to the top level of returned records")
	cmd.Flags().BoolVar(&opts.ReturnGeometry, "return-geometry", defaults.ReturnGeometryEnabled(), "Request geometry with records")
	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "Serve layers from a fixture file instead of the network")
	cmd.Flags().StringVar(&opts.Token, "token", "", "Access token sent with every request")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 30, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP retry attempts")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "HTTP retry base delay in milliseconds")
}

// overrides returns the settings given explicitly on the command line.
// Flags left at their defaults stay empty so config and environment values
// apply.
func (opts storeFlags) overrides(cmd *cobra.Command) types.StoreSettings {
	settings := types.StoreSettings{}
	if flagChanged(cmd, "url") {
		settings.Options.URL = strings.TrimSpace(opts.URL)
	}
	if flagChanged(cmd, "id-property") {
		settings.Options.IDProperty = strings.TrimSpace(opts.IDProperty)
	}
	if flagChanged(cmd, "out-fields") {
		settings.Options.OutFields = splitFields(opts.OutFields)
	}
	if flagChanged(cmd, "flatten") {
		settings.Options.Flatten = types.Bool(opts.Flatten)
	}
	if flagChanged(cmd, "return-geometry") {
		settings.Options.ReturnGeometry = types.Bool(opts.ReturnGeometry)
	}
	if flagChanged(cmd, "fixture") {
		settings.Fixture = strings.TrimSpace(opts.Fixture)
	}
	if flagChanged(cmd, "token") {
		settings.Token = strings.TrimSpace(opts.Token)
	}
	if flagChanged(cmd, "http-timeout") {
		settings.HTTPTimeoutSec = opts.HTTPTimeoutSec
	}
	if flagChanged(cmd, "http-retries") {
		settings.HTTPRetries = opts.HTTPRetries
	}
	if flagChanged(cmd, "http-retry-delay-ms") {
		settings.HTTPRetryDelayMs = opts.HTTPRetryDelayMs
	}
	return settings
}

// settings loads the --config file and FEATURESTORE_* environment through
// the service and applies the command-line overrides on top.
func (opts storeFlags) settings(cmd *cobra.Command, service app.Service) (types.StoreSettings, error) {
	return service.LoadSettings(configFile(cmd), opts.overrides(cmd))
}

// configFile is the --config path, or the featurestore.yaml found on the
// search path by initConfig.
func configFile(cmd *cobra.Command) string {
	if cmd != nil {
		if flag := cmd.Flag("config"); flag != nil && strings.TrimSpace(flag.Value.String()) != "" {
			return strings.TrimSpace(flag.Value.String())
		}
	}
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used
		}
	}
	return ""
}

func splitFields(values []string) []string {
	fields := []string{}
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				fields = append(fields, trimmed)
			}
		}
	}
	return fields
}
