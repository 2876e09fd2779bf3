package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "url")
	require.Error(t, err)

	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return &pgxpool.Pool{}, nil }
	db, err := NewPgxPool(context.Background(), "url")
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	// 每個版本都要有 up 與 down
	require.Len(t, entries, 8)
	require.Equal(t, "000001_create_users.down.sql", entries[0].Name())
}

func TestMigrate(t *testing.T) {
	okOpen := func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	okDriver := func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	okSource := func(fs.FS, string) (src.Driver, error) { return nil, nil }
	withMigrator := func(m migrateInstance, err error) func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
		return func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, err }
	}

	tests := []struct {
		name      string
		open      func(string, string) (*sql.DB, error)
		driver    func(*sql.DB, *postgres.Config) (dbdriver.Driver, error)
		source    func(fs.FS, string) (src.Driver, error)
		migrator  func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error)
		wantUpErr bool
		wantDnErr bool
	}{
		{
			name:      "open fails",
			open:      func(string, string) (*sql.DB, error) { return nil, errors.New("open") },
			wantUpErr: true, wantDnErr: true,
		},
		{
			name:      "driver fails",
			open:      okOpen,
			driver:    func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") },
			wantUpErr: true, wantDnErr: true,
		},
		{
			name:      "source fails",
			open:      okOpen,
			driver:    okDriver,
			source:    func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") },
			wantUpErr: true, wantDnErr: true,
		},
		{
			name:      "migrate init fails",
			open:      okOpen,
			driver:    okDriver,
			source:    okSource,
			migrator:  withMigrator(nil, errors.New("mig")),
			wantUpErr: true, wantDnErr: true,
		},
		{
			name:      "step fails",
			open:      okOpen,
			driver:    okDriver,
			source:    okSource,
			migrator:  withMigrator(fakeMigrator{upErr: errors.New("u"), downErr: errors.New("d")}, nil),
			wantUpErr: true, wantDnErr: true,
		},
		{
			name:     "no change",
			open:     okOpen,
			driver:   okDriver,
			source:   okSource,
			migrator: withMigrator(fakeMigrator{upErr: migrate.ErrNoChange, downErr: migrate.ErrNoChange}, nil),
		},
		{
			name:     "success",
			open:     okOpen,
			driver:   okDriver,
			source:   okSource,
			migrator: withMigrator(fakeMigrator{}, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(restore)
			sqlOpenDB = tt.open
			if tt.driver != nil {
				postgresWithInstanceFn = tt.driver
			}
			if tt.source != nil {
				iofsNewFn = tt.source
			}
			if tt.migrator != nil {
				migrateNewWithInstance = tt.migrator
			}

			if tt.wantUpErr {
				require.Error(t, RunMigrations("url"))
			} else {
				require.NoError(t, RunMigrations("url"))
			}
			if tt.wantDnErr {
				require.Error(t, RollbackAll("url"))
			} else {
				require.NoError(t, RollbackAll("url"))
			}
		})
	}
}
