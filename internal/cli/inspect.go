package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"featurestore/internal/app"
)

type inspectOptions struct {
	Store storeFlags
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Resolve a layer's schema and print the effective store configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	addStoreFlags(cmd, &opts.Store)
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	settings, err := opts.Store.settings(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Inspect(cmd.Context(), app.InspectRequest{
		Settings: settings,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "layer: %s (%s)\n", result.LayerName, result.GeometryType)
	fmt.Fprintf(out, "url: %s\n", result.URL)
	fmt.Fprintf(out, "identity: %s\n", result.IdentityField)
	fmt.Fprintf(out, "projection: %s\n", strings.Join(result.Projection, ","))
	capabilities := make([]string, 0, len(result.Capabilities))
	for _, capability := range result.Capabilities {
		capabilities = append(capabilities, string(capability))
	}
	fmt.Fprintf(out, "capabilities: %s\n", strings.Join(capabilities, ","))
	fmt.Fprintf(out, "fields: %d\n", len(result.Fields))
	for _, field := range result.Fields {
		fmt.Fprintf(out, "- %s (%s)\n", field.Name, field.Type)
	}
	return nil
}
