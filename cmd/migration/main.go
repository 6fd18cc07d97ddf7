package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/cricket-scorer/internal/app"
	"github.com/riskibarqy/cricket-scorer/internal/platform/logging"
)

var migrationDirs = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	logger := logging.New(os.Stderr, logging.LevelInfo, "service", "cricket-migration")
	if err := newRootCommand(logger).Execute(); err != nil {
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func newRootCommand(logger *logging.Logger) *cobra.Command {
	var dir string

	withMigrator := func(fn func(m *migrate.Migrate) error) error {
		m, source, err := openMigrator(dir)
		if err != nil {
			return err
		}
		defer func() {
			srcErr, dbErr := m.Close()
			if err := errors.Join(srcErr, dbErr); err != nil {
				logger.Warn("close migrator", "error", err)
			}
		}()
		logger.Info("migrator ready", "source", source)
		return fn(m)
	}

	root := &cobra.Command{
		Use:           "migration",
		Short:         "Apply the scorer database migrations (DB_URL)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", os.Getenv("MIGRATIONS_DIR"), "migrations directory")

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migrate.Migrate) error {
				return report(logger, "migrations applied", m.Up())
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil || n <= 0 {
					return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return withMigrator(func(m *migrate.Migrate) error {
				return report(logger, "migrations rolled back", m.Steps(-steps), "steps", steps)
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "version: none")
					return err
				}
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "version: %d\ndirty: %t\n", version, dirty)
				return err
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Set the version without running migrations (clears dirty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || version < -1 {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return withMigrator(func(m *migrate.Migrate) error {
				return report(logger, "version forced", m.Force(version), "version", version)
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:     "goto <version>",
		Aliases: []string{"migrate"},
		Short:   "Migrate up or down to a version",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid target version %q: %w", args[0], err)
			}
			return withMigrator(func(m *migrate.Migrate) error {
				return report(logger, "migrated", m.Migrate(uint(target)), "version", target)
			})
		},
	})
	return root
}

func report(logger *logging.Logger, msg string, err error, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func openMigrator(dir string) (*migrate.Migrate, string, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return nil, "", errors.New("DB_URL is required")
	}
	resolved, err := resolveMigrationsDir(dir)
	if err != nil {
		return nil, "", err
	}

	source := "file://" + filepath.ToSlash(resolved)
	m, err := migrate.New(source, withPreparedBinaryFlag(dbURL))
	if err != nil {
		return nil, "", fmt.Errorf("create migrator: %w", err)
	}
	return m, source, nil
}

func resolveMigrationsDir(explicit string) (string, error) {
	candidates := migrationDirs
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		candidates = []string{explicit}
	}
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found in %v", candidates)
}

// withPreparedBinaryFlag follows the API's DB_DISABLE_PREPARED_BINARY_RESULT handling (default on).
func withPreparedBinaryFlag(raw string) string {
	disable := true
	if enabled, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT"))); err == nil {
		disable = enabled
	}
	return app.PostgresDSN(raw, disable)
}
