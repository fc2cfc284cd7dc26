package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/MKhiriev/legacy-shield/internal/config"
	"github.com/MKhiriev/legacy-shield/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

// sqliteParams make a second CLI process wait for the journal lock instead
// of failing.
var sqliteParams = url.Values{
	"_busy_timeout": {"5000"},
	"_journal_mode": {"WAL"},
	"_synchronous":  {"NORMAL"},
}

// NewConnectSQLite opens the CLI's rotation journal at cfg.DSN. The file
// and its directory are created owner-only when missing.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := ensureJournalFile(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", cfg.DSN).Msg("error creating journal file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", "file:"+cfg.DSN+"?"+sqliteParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("error opening journal: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening journal (ping)")
		conn.Close()
		return nil, fmt.Errorf("error opening journal: %w", err)
	}
	log.Debug().Str("path", cfg.DSN).Msg("journal opened")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

func ensureJournalFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating journal dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("error creating journal file: %w", err)
	}
	return f.Close()
}
