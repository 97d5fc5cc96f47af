package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/deppfellow/label-lookup/internal/config"
)

// migrations are compiled into the binary.
//
//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsFS returns the embedded migrations directory.
func MigrationsFS() (fs.FS, error) {
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	return subtree, nil
}

// LatestVersion makes MigrateTo apply every embedded migration.
const LatestVersion int32 = -1

// Migrate brings the schema to the latest embedded migration using tern.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	return MigrateTo(ctx, logger, cfg, LatestVersion)
}

// MigrateTo moves the schema up or down to version, or to the latest
// migration for LatestVersion.
//
// The applied version is tracked in the schema_version table. A single
// connection is used rather than a pool.
func MigrateTo(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, version int32) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := MigrationsFS()
	if err != nil {
		return err
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	target, err := targetVersion(version, len(m.Migrations))
	if err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.MigrateTo(ctx, target); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if from == target {
		logger.Info().Msgf("database schema up to date, version %d", target)
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, target)
	}
	return nil
}

// targetVersion resolves LatestVersion and rejects versions outside [0, available].
func targetVersion(version int32, available int) (int32, error) {
	if version == LatestVersion {
		return int32(available), nil
	}
	if version < 0 || int(version) > available {
		return 0, fmt.Errorf("migration version %d out of range [0, %d]", version, available)
	}
	return version, nil
}
