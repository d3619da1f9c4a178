package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/revops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/revops-api/pkg/config"
	"github.com/jhoicas/revops-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Long: `Apply the SQL migrations embedded in the binary, in file name order.

Applied versions are recorded in schema_migrations; running the command
again only applies new files. Connection settings come from DATABASE_URL
or the DB_* variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.DB.Enabled() {
				return errors.New("no database configured: set DATABASE_URL or DB_HOST")
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()}).Component("migrate")

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				return err
			}
			for _, v := range applied {
				log.Info().Str("version", v).Msg("applied")
			}
			cmd.Printf("%d migration(s) applied\n", len(applied))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")
	return cmd
}
