package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xtanyr/lunch/internal/location"
)

// PostgresRepository stores one row per order. Partitions are the
// (city_key, address_key) columns; every write is a single statement.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectOrders = `
	SELECT id, employee_name, department, order_date, items, address, city, created_at
	FROM orders
`

// --------------------------------------------------
// READS
// --------------------------------------------------

func (r *PostgresRepository) ListByDate(
	ctx context.Context,
	p location.Partition,
	date string,
) ([]EmployeeOrder, error) {

	rows, err := r.db.Query(ctx, selectOrders+`
		WHERE city_key = $1 AND address_key = $2 AND order_date = $3
		ORDER BY created_at, id
	`, p.CityKey(), p.AddressKey(), date)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *PostgresRepository) ListByCity(
	ctx context.Context,
	city string,
	date string,
) ([]EmployeeOrder, error) {

	rows, err := r.db.Query(ctx, selectOrders+`
		WHERE city_key = $1 AND order_date = $2
		ORDER BY created_at, id
	`, location.CityKey(city), date)
	if err != nil {
		return nil, err
	}
	return scanOrders(rows)
}

func (r *PostgresRepository) ListAddresses(
	ctx context.Context,
	city string,
) ([]string, error) {

	rows, err := r.db.Query(ctx, `
		SELECT MIN(address)
		FROM orders
		WHERE city_key = $1
		GROUP BY address_key
		ORDER BY 1
	`, location.CityKey(city))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []string{}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func scanOrders(rows pgx.Rows) ([]EmployeeOrder, error) {
	defer rows.Close()

	orders := []EmployeeOrder{}
	for rows.Next() {
		var (
			o     EmployeeOrder
			items []byte
		)
		if err := rows.Scan(
			&o.ID,
			&o.EmployeeName,
			&o.Department,
			&o.OrderDate,
			&items,
			&o.Address,
			&o.City,
			&o.Timestamp,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
		o.Timestamp = o.Timestamp.UTC()
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// --------------------------------------------------
// WRITES
// --------------------------------------------------

func (r *PostgresRepository) Append(
	ctx context.Context,
	o *EmployeeOrder,
) error {

	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now().UTC()
	}
	if o.ID == "" {
		o.ID = NewID(o.Timestamp)
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}

	p := o.Partition()
	_, err = r.db.Exec(ctx, `
		INSERT INTO orders (
			id,
			city,
			address,
			city_key,
			address_key,
			employee_name,
			department,
			order_date,
			items,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		o.ID,
		p.City,
		p.Address,
		p.CityKey(),
		p.AddressKey(),
		o.EmployeeName,
		o.Department,
		o.OrderDate,
		items,
		o.Timestamp,
	)
	return err
}

func (r *PostgresRepository) DeleteByID(
	ctx context.Context,
	p location.Partition,
	id string,
) (bool, error) {

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM orders
		WHERE id = $1 AND city_key = $2 AND address_key = $3
	`, id, p.CityKey(), p.AddressKey())
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
