package order

import (
	"context"

	"github.com/xtanyr/lunch/internal/location"
)

// Repository stores orders partitioned by (city, address). Orders in one
// partition are never visible through another.
type Repository interface {
	// ListByDate returns the partition's orders for date in insertion order.
	ListByDate(
		ctx context.Context,
		p location.Partition,
		date string,
	) ([]EmployeeOrder, error)

	// ListByCity returns the orders for date across every address of city.
	ListByCity(
		ctx context.Context,
		city string,
		date string,
	) ([]EmployeeOrder, error)

	// ListAddresses names the addresses of city that hold any orders.
	ListAddresses(
		ctx context.Context,
		city string,
	) ([]string, error)

	// Append stores o in its partition, assigning ID and Timestamp when unset.
	Append(ctx context.Context, o *EmployeeOrder) error

	// DeleteByID removes an order, reporting false when it does not exist.
	DeleteByID(
		ctx context.Context,
		p location.Partition,
		id string,
	) (bool, error)
}
