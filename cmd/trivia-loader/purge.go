package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/trivia-loader/internal/app"
)

func newPurgeCmd(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Empty every table and reset ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !e.loaderCfg.DryRun {
				return fmt.Errorf("refusing to purge %s without --yes", e.cfg.Database.Redacted())
			}
			return app.RunPurge(cmd.Context(), e.log, e.cfg.Database, *e.loaderCfg)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")
	return cmd
}
