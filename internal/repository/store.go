package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/beckagarrison/caseintake/internal/common"
)

// DocumentRow is one stored case document.
type DocumentRow struct {
	ID             uuid.UUID
	Title          string
	Method         string
	CharCount      int
	Text           string
	Violations     int
	TimelineEvents int
	AddedAt        time.Time
}

// DocumentRepository is the persistence behavior the service depends on.
type DocumentRepository interface {
	Save(ctx context.Context, row DocumentRow) error
	List(ctx context.Context) ([]DocumentRow, error)
}

// Config holds database connection configuration.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// Store persists documents in SQLite (default) or Postgres when the DSN is
// a postgres URL.
type Store struct {
	db     *sql.DB
	pool   *pgxpool.Pool // nil for sqlite
	logger *slog.Logger
}

var _ DocumentRepository = (*Store)(nil)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	method          TEXT NOT NULL,
	char_count      INTEGER NOT NULL,
	text            TEXT NOT NULL,
	violations      INTEGER NOT NULL DEFAULT 0,
	timeline_events INTEGER NOT NULL DEFAULT 0,
	added_at        TIMESTAMP NOT NULL
)`

// Open connects, verifies the connection, and bootstraps the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DSN == "" {
		return nil, common.NewAppError("DB_CONFIG", "DSN is required", common.ErrInvalidInput)
	}

	s := &Store{logger: logger}
	if isPostgresDSN(cfg.DSN) {
		pcfg, err := pgxpool.ParseConfig(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("parse dsn: %w", err)
		}
		if cfg.MaxConns > 0 {
			pcfg.MaxConns = cfg.MaxConns
		}
		if cfg.MinConns > 0 {
			pcfg.MinConns = cfg.MinConns
		}
		if cfg.MaxConnLifetime > 0 {
			pcfg.MaxConnLifetime = cfg.MaxConnLifetime
		}
		if cfg.MaxConnIdleTime > 0 {
			pcfg.MaxConnIdleTime = cfg.MaxConnIdleTime
		}
		if cfg.DialTimeout > 0 {
			pcfg.ConnConfig.ConnectTimeout = cfg.DialTimeout
		}
		pool, err := pgxpool.NewWithConfig(ctx, pcfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.pool = pool
		s.db = stdlib.OpenDBFromPool(pool)
	} else {
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// modernc sqlite serializes writes; a single connection avoids
		// table-lock errors on concurrent saves.
		db.SetMaxOpenConns(1)
		s.db = db
	}

	if err := s.db.PingContext(ctx); err != nil {
		s.Close()
		return nil, common.WrapError(err, "ping database")
	}
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		s.Close()
		return nil, common.WrapError(err, "create schema")
	}
	logger.Info("document store ready", "postgres", s.pool != nil)
	return s, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func (s *Store) Save(ctx context.Context, row DocumentRow) error {
	const q = `INSERT INTO documents
		(id, title, method, char_count, text, violations, timeline_events, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, q,
		row.ID.String(), row.Title, row.Method, row.CharCount, row.Text,
		row.Violations, row.TimelineEvents, row.AddedAt.UTC())
	if err != nil {
		s.logger.Error("save document failed", "id", row.ID, "error", err)
		return common.WrapError(err, "save document")
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]DocumentRow, error) {
	const q = `SELECT id, title, method, char_count, text, violations, timeline_events, added_at
		FROM documents ORDER BY added_at, id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, common.WrapError(err, "list documents")
	}
	defer func() { _ = rows.Close() }()

	var out []DocumentRow
	for rows.Next() {
		var r DocumentRow
		var id string
		if err := rows.Scan(&id, &r.Title, &r.Method, &r.CharCount, &r.Text,
			&r.Violations, &r.TimelineEvents, &r.AddedAt); err != nil {
			return nil, common.WrapError(err, "scan document")
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, common.WrapError(err, "parse document id")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HealthCheck pings the store within the timeout.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database", "error", err)
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
