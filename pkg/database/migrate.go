package database

import (
	"context"
	"embed"
	"fmt"
	"path"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-marketplace-api/pkg/config"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// MigrationStatus describes one embedded migration against the current schema version.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

// Migrator applies the embedded goose migrations for the connected driver.
type Migrator struct {
	db  *sqlx.DB
	dir string
}

// NewMigrator selects the goose dialect and migration directory for db.
func NewMigrator(db *sqlx.DB, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dialect, dir, err := gooseDialect(db.DriverName())
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{sugar: logger.Sugar()})
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	return &Migrator{db: db, dir: dir}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db.DB, m.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db.DB)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

// Status lists every embedded migration and whether it is applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	current, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	migrations, err := goose.CollectMigrations(m.dir, 0, goose.MaxVersion)
	if err != nil {
		return nil, fmt.Errorf("collect migrations: %w", err)
	}
	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, mg := range migrations {
		statuses = append(statuses, MigrationStatus{
			Version: mg.Version,
			Source:  path.Base(mg.Source),
			Applied: mg.Version <= current,
		})
	}
	return statuses, nil
}

func gooseDialect(driverName string) (dialect, dir string, err error) {
	switch driverName {
	case config.DriverPostgres, config.DriverPgx:
		return "postgres", "migrations/postgres", nil
	case config.DriverMySQL:
		return "mysql", "migrations/mysql", nil
	case config.DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driverName)
	}
}

type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.sugar.Fatalf(format, v...)
}
