package blackout

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(
	ctx context.Context,
	cityKey string,
) (*Range, error) {

	var rng Range
	err := r.db.QueryRow(ctx, `
		SELECT start_date, end_date, message
		FROM disabled_dates
		WHERE city_key = $1
	`, cityKey).Scan(&rng.StartDate, &rng.EndDate, &rng.Message)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rng, nil
}

func (r *PostgresRepository) Put(
	ctx context.Context,
	cityKey string,
	rng *Range,
) error {

	if rng == nil {
		_, err := r.db.Exec(ctx, `DELETE FROM disabled_dates WHERE city_key = $1`, cityKey)
		return err
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO disabled_dates (city_key, start_date, end_date, message, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (city_key)
		DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			message = EXCLUDED.message,
			updated_at = now()
	`, cityKey, rng.StartDate, rng.EndDate, rng.Message)
	return err
}
