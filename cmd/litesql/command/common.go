// Package command implements the litesql CLI's subcommands.
package command

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/joeandaverde/litesql/internal/config"
	"github.com/joeandaverde/litesql/internal/schema"
)

func newLogger(cfg *config.Config) *log.Logger {
	logger := log.New()
	logger.SetLevel(cfg.LogLevel)
	return logger
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// openDatabase opens dbPath and validates its file header, logging a
// warning (never a failure) if the header's page size disagrees with the
// config's hint.
func openDatabase(dbPath string, cfg *config.Config, logger *log.Logger) (*schema.Database, func(), error) {
	f, err := os.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database file: %w", err)
	}

	db, err := schema.Open(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	if cfg.PageSizeHint != 0 && cfg.PageSizeHint != db.Header().PageSize {
		logger.Warnf("configured page_size_hint %d does not match file header page size %d",
			cfg.PageSizeHint, db.Header().PageSize)
	}

	return db, func() { f.Close() }, nil
}
