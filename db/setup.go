package db

import (
	"strings"

	"github.com/cronmon-dev/cronmon/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the monitor record store. Postgres DSNs are the
// production path; a "sqlite://" DSN or a bare file path selects the
// embedded sqlite driver for local runs and tests.
func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(openDialector(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func openDialector(dsn string) gorm.Dialector {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	case dsn == ":memory:" || strings.HasSuffix(dsn, ".db"):
		return sqlite.Open(dsn)
	default:
		return postgres.Open(dsn)
	}
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.Monitor{},
		&models.Ping{},
		&models.Alert{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
