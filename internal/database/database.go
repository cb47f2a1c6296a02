package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"travel-map/internal/config"
	"travel-map/internal/logger"

	_ "github.com/lib/pq"
)

// DB - подключение к PostgreSQL
type DB struct {
	*sql.DB
	log *logger.Logger
}

// Connect открывает пул соединений и проверяет доступность базы
func Connect(cfg *config.DatabaseConfig, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Successfully connected to PostgreSQL")

	return &DB{DB: conn, log: log}, nil
}

// schema - таблица маркеров. seq задаёт порядок вставки, от которого зависит порядок точек маршрута
const schema = `
CREATE TABLE IF NOT EXISTS markers (
	id         UUID PRIMARY KEY,
	seq        BIGSERIAL NOT NULL,
	title      TEXT NOT NULL,
	coordinate JSONB,
	color      TEXT NOT NULL DEFAULT '',
	route      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS markers_seq_idx ON markers (seq);
`

// Migrate создаёт схему, если её ещё нет
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	db.log.Info("Database schema is up to date")
	return nil
}
