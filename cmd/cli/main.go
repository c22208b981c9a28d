package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emrekaraca/duty-roster/cmd/cli/commands"
	"github.com/emrekaraca/duty-roster/internal/config"
	"github.com/emrekaraca/duty-roster/internal/logging"
	"github.com/emrekaraca/duty-roster/pkg/store"
	"github.com/emrekaraca/duty-roster/pkg/store/postgres"
)

var (
	envName    string
	app        *commands.AppContext
	closeStore func()
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "duty-roster",
		Short: "Teacher duty roster - assign supervision duties fairly",
		Long: `A CLI tool for managing a teacher duty roster: register teachers, generate
monthly supervision schedules balanced across teachers and duty locations,
and keep confirmed rosters as history for future months.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if closeStore != nil {
				closeStore()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "development", "Environment (development, production)")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.TeachersCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.CalendarCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, calendar, and the state store
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(envName)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Starting application", zap.String("environment", envName))

	app.Env, err = config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment settings: %w", err)
	}

	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded")

	app.Cal, err = app.Cfg.BuildCalendar()
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	app.Database, closeStore, err = initStore()
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	return nil
}

// initStore picks the state backend: PostgreSQL when a DSN is configured,
// otherwise the JSON file store.
func initStore() (store.Store, func(), error) {
	if dsn := app.Env.Database.DSN; dsn != "" {
		app.Logger.Debug("Using PostgreSQL store")

		pg, err := postgres.New(
			app.Ctx,
			dsn,
			time.Duration(app.Env.Database.ConnectTimeout)*time.Second,
			time.Duration(app.Env.Database.QueryTimeout)*time.Second,
		)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(app.Ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	path := app.Cfg.StateFilePath()
	app.Logger.Debug("Using JSON file store", zap.String("path", path))
	return store.NewFileStore(path), nil, nil
}
