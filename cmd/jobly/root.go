package main

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/database"
	"github.com/deppfellow/jobly/internal/logger"
	"github.com/deppfellow/jobly/internal/repository"
	"github.com/deppfellow/jobly/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// app is what every subcommand runs against. It is built in the root
// PersistentPreRunE and torn down by run once the command returns.
type app struct {
	cfg    *config.Config
	log    *zerolog.Logger
	logSvc *logger.LoggerService
	srv    *server.Server
	repos  *repository.Repositories
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "jobly",
		Short: "Manage jobly users and job applications",
		Long: `jobly talks directly to the jobly PostgreSQL database.

Configuration comes from JOBLY_-prefixed environment variables (a .env file
in the working directory is loaded too), for example JOBLY_DATABASE.HOST.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.AddCommand(
		newMigrateCmd(a),
		newUsersCmd(a),
		newApplyCmd(a),
		newStatusCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logSvc, err = logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return fmt.Errorf("failed to initialize New Relic: %w", err)
	}

	log := logger.NewLoggerWithService(cfg.Observability, a.logSvc)
	a.log = &log

	// migrate only needs the DSN; everything else needs the pool.
	if cmd.Name() == "migrate" {
		return nil
	}

	a.srv, err = server.New(cfg, a.log, a.logSvc)
	if err != nil {
		return err
	}
	a.repos = repository.NewRepositories(a.srv)
	return nil
}

// teardown closes the pool and flushes New Relic. It is safe to call when
// setup never ran or stopped halfway.
func (a *app) teardown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if a.srv != nil {
		err := a.srv.Shutdown(ctx)
		a.srv = nil
		return err
	}
	a.logSvc.Shutdown()
	return nil
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return database.Migrate(cmd.Context(), a.log, a.cfg.Database.DSN())
		},
	}
}
