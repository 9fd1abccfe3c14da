package migrations

import (
	"embed"
	"fmt"
	"os"

	"github.com/grandupright/quote-intake/internal/config"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// MigrateStore brings the postgres schema up to date. The embedded
// migrations are used unless the config points at a folder on disk.
func MigrateStore(db *gorm.DB, cfg *config.Config) error {
	goose.SetLogger(&logger{})

	dir := "sql"
	if cfg.Service.MigrationFolder != "" {
		fi, err := os.Stat(cfg.Service.MigrationFolder)
		if err != nil {
			return err
		}

		if !fi.Mode().IsDir() {
			return fmt.Errorf("failed to open migration folder: %s is not a folder", cfg.Service.MigrationFolder)
		}

		goose.SetBaseFS(os.DirFS(cfg.Service.MigrationFolder))
		dir = "."
	} else {
		goose.SetBaseFS(embedMigrations)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, dir)
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Infof(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Fatalf(format, v...) }
