package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"featurestore/internal/app"
	"featurestore/internal/types"
)

type identityOptions struct {
	Store  storeFlags
	Record string
}

func newIdentityCommand() *cobra.Command {
	opts := identityOptions{}
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print the identity value of a JSON record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIdentity(cmd, opts)
		},
	}
	addStoreFlags(cmd, &opts.Store)
	cmd.Flags().StringVar(&opts.Record, "record", "", "Record as a JSON object, flat or in wire shape")
	return cmd
}

func runIdentity(cmd *cobra.Command, opts identityOptions) error {
	record, err := parseRecord(opts.Record)
	if err != nil {
		return err
	}
	service := newAppService()
	settings, err := opts.Store.settings(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Identity(cmd.Context(), app.IdentityRequest{
		Settings: settings,
		Record:   record,
	})
	if err != nil {
		return err
	}
	if !result.Found {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("record has no identity value")
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Identity)
	return nil
}

func parseRecord(raw string) (types.Record, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--record is required")
	}
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var record types.Record
	if err := decoder.Decode(&record); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid record JSON").
			WithCause(err)
	}
	return record, nil
}
