package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"featurestore/internal/app"
)

func newAppService() app.Service {
	return app.NewService()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
