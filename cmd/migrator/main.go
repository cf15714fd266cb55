// Command migrator applies the SQL schema migrations to the catalog
// database before the API starts.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	databaseFlag   = "database"
	migrationsFlag = "migrations-path"
)

func main() {
	database, migrationsPath := getFlagsValues()
	validateFlags(database, migrationsPath)
	makeMigrations(database, migrationsPath)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (database, migrations string) {
	databaseDSN := pflag.StringP(databaseFlag, "d", "", "database DSN, user:pass@host:port/dbname")
	migrationsPath := pflag.StringP(migrationsFlag, "m", "migrations", "path to migration files")
	pflag.Parse()
	return *databaseDSN, *migrationsPath
}

func validateFlags(database, migrationsPath string) {
	var errs []error

	if database == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", databaseFlag))
	}

	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationsFlag))
	}

	if len(errs) != 0 {
		slog.Error("too few args", "err", errors.Join(errs...))
		os.Exit(2)
	}
}

func makeMigrations(database, migrationsPath string) {
	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("pgx5://%s", database),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}

	m.Log = NewMigrationLogger()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}
	m.Log.Printf("migration applied")
}
