package menu

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository keeps one JSONB document per city in the menus and
// menu_configs tables.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// CATALOG
// --------------------------------------------------

func (r *PostgresRepository) GetCatalog(
	ctx context.Context,
	cityKey string,
) (Catalog, bool, error) {

	var catalog Catalog
	found, err := r.load(ctx, `SELECT data FROM menus WHERE city_key = $1`, cityKey, &catalog)
	return catalog, found, err
}

func (r *PostgresRepository) SaveCatalog(
	ctx context.Context,
	cityKey string,
	catalog Catalog,
) error {

	return r.store(ctx, `
		INSERT INTO menus (city_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (city_key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, cityKey, catalog)
}

// --------------------------------------------------
// MENU CONFIG
// --------------------------------------------------

func (r *PostgresRepository) GetConfig(
	ctx context.Context,
	cityKey string,
) (Config, bool, error) {

	var cfg Config
	found, err := r.load(ctx, `SELECT data FROM menu_configs WHERE city_key = $1`, cityKey, &cfg)
	return cfg, found, err
}

func (r *PostgresRepository) SaveConfig(
	ctx context.Context,
	cityKey string,
	cfg Config,
) error {

	return r.store(ctx, `
		INSERT INTO menu_configs (city_key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (city_key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, cityKey, cfg)
}

func (r *PostgresRepository) load(ctx context.Context, query, cityKey string, dst any) (bool, error) {
	var data []byte
	err := r.db.QueryRow(ctx, query, cityKey).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresRepository) store(ctx context.Context, query, cityKey string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, cityKey, data)
	return err
}
