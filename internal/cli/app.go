package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-marketplace-api/internal/server"
	"github.com/noah-isme/tutor-marketplace-api/pkg/config"
	"github.com/noah-isme/tutor-marketplace-api/pkg/database"
	"github.com/noah-isme/tutor-marketplace-api/pkg/logger"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

var (
	colorApplied = color.New(color.FgGreen)
	colorPending = color.New(color.FgYellow)
	colorHeader  = color.New(color.Bold)
)

// App holds the command tree and the lazily loaded runtime dependencies.
type App struct {
	root *cobra.Command
	out  io.Writer

	loadConfig func() (*config.Config, error)
	openDB     func(config.DatabaseConfig) (*sqlx.DB, error)
}

// NewApp builds the tutor-api command tree.
func NewApp() *App {
	a := &App{out: os.Stdout, loadConfig: config.Load, openDB: database.New}

	a.root = &cobra.Command{
		Use:           "tutor-api",
		Short:         "Tutor marketplace HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.migrateCmd())
	a.root.AddCommand(a.versionCmd())
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "tutor-api %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logr, err := a.bootstrap()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			db, err := a.openDB(cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if cfg.Database.AutoMigrate {
				migrator, err := database.NewMigrator(db, logr)
				if err != nil {
					return err
				}
				if err := migrator.Up(cmd.Context()); err != nil {
					return err
				}
			}

			if cfg.Env == config.EnvProduction {
				gin.SetMode(gin.ReleaseMode)
			}
			router := server.NewRouter(cfg, db, logr)
			logr.Info("configuration loaded",
				zap.String("env", cfg.Env),
				zap.String("driver", cfg.Database.Driver),
				zap.Bool("exports", cfg.Features.Exports),
				zap.Bool("metrics", cfg.Features.Metrics),
			)
			return server.Serve(cmd.Context(), fmt.Sprintf(":%d", cfg.Port), router, logr)
		},
	}
}

func (a *App) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMigrator(func(m *database.Migrator) error {
				if err := m.Up(cmd.Context()); err != nil {
					return err
				}
				version, err := m.Version(cmd.Context())
				if err != nil {
					return err
				}
				colorApplied.Fprintf(a.out, "schema at version %d\n", version)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMigrator(func(m *database.Migrator) error {
				statuses, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				a.printStatus(statuses)
				return nil
			})
		},
	})
	return cmd
}

func (a *App) printStatus(statuses []database.MigrationStatus) {
	colorHeader.Fprintf(a.out, "%-10s %-8s %s\n", "VERSION", "STATE", "SOURCE")
	for _, s := range statuses {
		state, c := "pending", colorPending
		if s.Applied {
			state, c = "applied", colorApplied
		}
		fmt.Fprintf(a.out, "%-10d ", s.Version)
		c.Fprintf(a.out, "%-8s", state)
		fmt.Fprintf(a.out, " %s\n", s.Source)
	}
}

func (a *App) withMigrator(fn func(*database.Migrator) error) error {
	cfg, logr, err := a.bootstrap()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	db, err := a.openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db, logr)
	if err != nil {
		return err
	}
	return fn(migrator)
}

func (a *App) bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logr, nil
}
