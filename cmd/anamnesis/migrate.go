// ABOUTME: CLI command for migrating assessments between storage backends.
// ABOUTME: Copies everything from one backend into an empty destination backend.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/anamnesis/internal/charm"
	"github.com/harperreed/anamnesis/internal/config"
	"github.com/harperreed/anamnesis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate assessments between storage backends",
	Long: `Copy every assessment from one storage backend to another.

The destination must not contain any assessments yet. Duplicate IDs
would otherwise cause the migration to stop halfway.

BACKENDS:

  sqlite   Local database in the data directory
  charm    Charm KV with encrypted cloud sync

USAGE:

  anamnesis migrate --from sqlite --to charm --dry-run   # Preview
  anamnesis migrate --from sqlite --to charm             # Copy

AFTER MIGRATION:

  Switch the default backend so new assessments land in the destination:
    anamnesis config set backend charm`,
	Annotations: map[string]string{noStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		src, err := openBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		if migrateDryRun {
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			fmt.Fprintln(out)

			list, err := src.ListAssessments(nil, 0)
			if err != nil {
				return fmt.Errorf("failed to list source assessments: %w", err)
			}
			users := make(map[string]bool)
			for _, a := range list {
				users[a.UserID] = true
			}
			fmt.Fprintf(out, "Would migrate %d assessments for %d users from %s to %s.\n",
				len(list), len(users), migrateFrom, migrateTo)
			return nil
		}

		if migrateTo == config.BackendSQLite {
			nonEmpty, err := storage.IsDirNonEmpty(cfg.GetDataDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				fmt.Fprintln(out, color.New(color.Faint).Sprintf("Data directory %s already has files", cfg.GetDataDir()))
			}
		}

		dst, err := openBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		existing, err := dst.ListAssessments(nil, 1)
		if err != nil {
			return fmt.Errorf("failed to inspect destination: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("destination %s already contains assessments", migrateTo)
		}

		// Sync once at the end instead of after every copied assessment.
		if cc, ok := dst.(*charm.Client); ok {
			cc.SetAutoSync(false)
			defer func() {
				if err := cc.Sync(); err != nil {
					fmt.Fprintln(out, color.YellowString("⚠ Sync after migration failed: %v", err))
				}
			}()
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Migrated %d assessments for %d users from %s to %s",
			summary.Assessments, summary.Users, migrateFrom, migrateTo))
		return nil
	},
}

// openBackend opens storage for a backend other than the configured one.
func openBackend(backend string) (storage.Repository, error) {
	c := *cfg
	c.Backend = backend
	return c.OpenStorage()
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend: sqlite or charm")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendCharm, "destination backend: sqlite or charm")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
