package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"featurestore/internal/app"
)

type getOptions struct {
	Store storeFlags
	ID    string
}

func newGetCommand() *cobra.Command {
	opts := getOptions{}
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch one record by identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGet(cmd, opts)
		},
	}
	addStoreFlags(cmd, &opts.Store)
	cmd.Flags().StringVar(&opts.ID, "id", "", "Identity value, typed by the identity field's declared type")
	return cmd
}

func runGet(cmd *cobra.Command, opts getOptions) error {
	id := strings.TrimSpace(opts.ID)
	if id == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--id is required")
	}
	service := newAppService()
	settings, err := opts.Store.settings(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Get(cmd.Context(), app.GetRequest{
		Settings: settings,
		IDText:   id,
	})
	if err != nil {
		return err
	}
	if !result.Found {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no record with identity: " + id)
	}
	return writeJSON(cmd, result.Record)
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to encode %T", value)).
			WithCause(err)
	}
	return nil
}
