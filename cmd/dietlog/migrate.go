package main

import (
	"errors"
	"fmt"

	"dietlog/internal/adapter/postgres"
	"dietlog/internal/app"
	"dietlog/internal/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.UseMemory() {
				return errors.New("migrate: DATABASE_URL is required")
			}
			log := app.NewLogger(cfg.Log)

			db, err := postgres.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			n, err := db.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("migrations applied", "count", n)
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
}
