// Command migrate applies the embedded schema migrations.
//
//	migrate           # to the latest version
//	migrate --to 0    # roll everything back
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/database"
	"github.com/deppfellow/label-lookup/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var version int32

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply label-lookup database migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Observability)

			return database.MigrateTo(cmd.Context(), &log, cfg, version)
		},
	}

	cmd.Flags().Int32Var(&version, "to", database.LatestVersion, "target schema version (-1 for latest)")

	return cmd
}
