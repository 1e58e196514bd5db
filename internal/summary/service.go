package summary

import (
	"context"

	"github.com/xtanyr/lunch/internal/location"
	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/order"
)

// CatalogSource supplies a city's dishes and sides.
type CatalogSource interface {
	Catalog(ctx context.Context, city string) (menu.Catalog, error)
}

// OrderSource supplies stored orders.
type OrderSource interface {
	ListByDate(ctx context.Context, city, address, date string) ([]order.EmployeeOrder, error)
	ListByCity(ctx context.Context, city, date string) ([]order.EmployeeOrder, error)
}

// Summary is the aggregated demand of one location, or of a whole city when
// Address is empty.
type Summary struct {
	City          string           `json:"city"`
	Address       string           `json:"address,omitempty"`
	Date          string           `json:"date"`
	Items         []AggregatedItem `json:"items"`
	TotalQuantity int              `json:"totalQuantity"`
	TotalAmount   float64          `json:"totalAmount"`
	OrderCount    int              `json:"orderCount"`
}

type Service struct {
	catalogs CatalogSource
	orders   OrderSource
}

func NewService(catalogs CatalogSource, orders OrderSource) *Service {
	return &Service{catalogs: catalogs, orders: orders}
}

// ForPartition aggregates the orders of one (city, address) for date.
func (s *Service) ForPartition(ctx context.Context, city, address, date string) (Summary, error) {
	p := location.NewPartition(city, address)
	orders, err := s.orders.ListByDate(ctx, p.City, p.Address, date)
	if err != nil {
		return Summary{}, err
	}
	sum, err := s.build(ctx, p.City, date, orders)
	if err != nil {
		return Summary{}, err
	}
	sum.Address = p.Address
	return sum, nil
}

// ForCity aggregates the orders of every address of city for date.
func (s *Service) ForCity(ctx context.Context, city, date string) (Summary, error) {
	city = location.NormalizeCity(city)
	orders, err := s.orders.ListByCity(ctx, city, date)
	if err != nil {
		return Summary{}, err
	}
	return s.build(ctx, city, date, orders)
}

// Orders aggregates an already fetched order set against the city's catalog.
func (s *Service) Orders(ctx context.Context, city string, orders []order.EmployeeOrder) ([]AggregatedItem, error) {
	catalog, err := s.catalogs.Catalog(ctx, city)
	if err != nil {
		return nil, err
	}
	return Aggregate(orders, catalog.Items, catalog.Sides), nil
}

func (s *Service) build(ctx context.Context, city, date string, orders []order.EmployeeOrder) (Summary, error) {
	items, err := s.Orders(ctx, city, orders)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{City: city, Date: date, Items: items, OrderCount: len(orders)}
	for _, it := range items {
		sum.TotalQuantity += it.TotalQuantity
		sum.TotalAmount += it.Amount()
	}
	return sum, nil
}
