package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dietlog",
		Short:         "dietlog tracks food intake against personal nutrition targets",
		Long:          "dietlog is a nutrition diary service: daily targets from a body profile, a product and dish catalog, progress tracking and dietitian meal plans.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newTargetsCmd())
	return root
}
