package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Connect opens a pool against dsn, checks it and creates the tables the
// service needs.
func Connect(ctx context.Context, dsn string, log logrus.FieldLogger) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.WithField("host", config.ConnConfig.Host).Info("connected to postgres")

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	log.Info("schema initialized")

	return pool, nil
}

// --------------------------------------------------
// SCHEMA
// --------------------------------------------------

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		city          TEXT NOT NULL,
		address       TEXT NOT NULL,
		city_key      TEXT NOT NULL,
		address_key   TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		department    TEXT NOT NULL,
		order_date    TEXT NOT NULL,
		items         JSONB NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_city_date_idx
		ON orders (city_key, order_date)`,
	`CREATE INDEX IF NOT EXISTS orders_partition_date_idx
		ON orders (city_key, address_key, order_date)`,
	`CREATE TABLE IF NOT EXISTS menus (
		city_key   TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS menu_configs (
		city_key   TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS disabled_dates (
		city_key   TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		message    TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// initSchema creates the tables if they are missing. Statements are
// idempotent so it runs on every start.
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
