package migration

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var FS embed.FS

// Version é a última migração conhecida por este binário
const Version = 1

var ErrDirtyDatabase = errors.New("database is in dirty state")

// Migrate aplica as migrações embutidas até Version
func Migrate(dsn string) error {
	source, err := iofs.New(FS, "sql")
	if err != nil {
		return err
	}
	defer source.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return err
	}
	defer mg.Close()

	current, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return ErrDirtyDatabase
	}

	if err = mg.Migrate(Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"from_version": current,
		"to_version":   Version,
	}).Info("Migrações aplicadas")

	return nil
}

// Rollback desfaz todas as migrações (uso local)
func Rollback(dsn string) error {
	source, err := iofs.New(FS, "sql")
	if err != nil {
		return err
	}
	defer source.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
