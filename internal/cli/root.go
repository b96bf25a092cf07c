// Package cli implements timetablectl, the administrative command line for the timetable store.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ReeshabhSaini/CampusGrid-sub000/internal/app"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/config"
	"github.com/ReeshabhSaini/CampusGrid-sub000/pkg/logger"
)

// runtime carries configuration shared by every subcommand. The application is
// opened lazily so commands such as migrate never build the services.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	app    *app.App
}

func (r *runtime) open() (*app.App, error) {
	if r.app != nil {
		return r.app, nil
	}
	a, err := app.New(r.cfg, r.logger)
	if err != nil {
		return nil, err
	}
	r.app = a
	return a, nil
}

func (r *runtime) close() {
	if r.app != nil {
		r.app.Close()
		r.app = nil
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
}

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "timetablectl",
		Short: "timetablectl administers the campus timetable",
		Long: `timetablectl runs schema migrations, bulk-imports recurring sessions and
holidays from CSV, and answers availability questions against the timetable store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rt.cfg = cfg
			rt.logger = log.With(zap.String("command", cmd.CommandPath()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rt.close()
		},
	}

	root.AddCommand(
		newMigrateCommand(rt),
		newImportCommand(rt),
		newFreeSlotsCommand(rt),
		newHallsCommand(rt),
		newExportCommand(rt),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
