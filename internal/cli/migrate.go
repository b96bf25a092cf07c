package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/database"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Applies or rolls back schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Runs the up migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(rt, func(m *database.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return reportVersion(cmd, rt, m)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Rolls back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(rt, func(m *database.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return reportVersion(cmd, rt, m)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Prints the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(rt, func(m *database.Migrator) error {
				return reportVersion(cmd, rt, m)
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withMigrator(rt *runtime, fn func(*database.Migrator) error) error {
	m, err := database.NewMigrator(rt.cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			rt.logger.Warn("close migrator", zap.Error(err))
		}
	}()
	return fn(m)
}

func reportVersion(cmd *cobra.Command, rt *runtime, m *database.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	rt.logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}
