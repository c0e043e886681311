package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/gratefultolord/intake_bot/internal/config"
)

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 60 * time.Minute
	connectTimeout  = 10 * time.Second
)

// DB owns the PostgreSQL pool shared by the conversation, hand-off and admin repositories.
type DB struct {
	Conn *sqlx.DB
	log  zerolog.Logger
}

// DSN renders the connection settings as a lib/pq keyword/value string.
// Values are quoted so passwords with spaces or quotes survive.
func DSN(cfg *config.Config) string {
	pairs := []struct{ key, value string }{
		{"host", cfg.DBHost},
		{"port", cfg.DBPort},
		{"user", cfg.DBUser},
		{"password", cfg.DBPassword},
		{"dbname", cfg.DBName},
		{"sslmode", "disable"},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.key+"="+quoteDSNValue(p.value))
	}

	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}

	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)

	return "'" + v + "'"
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*DB, error) {
	return Open(ctx, DSN(cfg), log)
}

// Open connects to dsn and gives up after connectTimeout.
func Open(ctx context.Context, dsn string, log zerolog.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("db.Open: cannot connect to database: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	return &DB{Conn: conn, log: log}, nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}

// Migrate runs each SQL script in its own transaction, in order.
// Scripts must be idempotent; they run on every start.
func (db *DB) Migrate(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if err := db.runScript(ctx, path); err != nil {
			return fmt.Errorf("DB.Migrate: %w", err)
		}
		db.log.Info().Str("script", filepath.Base(path)).Msg("migration applied")
	}

	return nil
}

func (db *DB) runScript(ctx context.Context, path string) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	tx, err := db.Conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", path, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", path, err)
	}

	return nil
}
