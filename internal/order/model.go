package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xtanyr/lunch/internal/location"
)

// Item is one dish in an order, with the side chosen for it.
type Item struct {
	DishID         string `json:"dishId"`
	SelectedSideID string `json:"selectedSideId,omitempty"`
}

// EmployeeOrder is a submitted order. It is never changed after creation.
type EmployeeOrder struct {
	ID           string    `json:"id"`
	EmployeeName string    `json:"employeeName"`
	Department   string    `json:"department"`
	OrderDate    string    `json:"orderDate"`
	Items        []Item    `json:"items"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Timestamp    time.Time `json:"timestamp"`
}

// Partition is the (city, address) set the order belongs to.
func (o EmployeeOrder) Partition() location.Partition {
	return location.NewPartition(o.City, o.Address)
}

// Submission is an order as the client sends it.
type Submission struct {
	EmployeeName string `json:"employeeName"`
	Department   string `json:"department"`
	OrderDate    string `json:"orderDate"`
	Items        []Item `json:"items"`
	Address      string `json:"address"`
	City         string `json:"city"`
}

// ResolveDepartment fills the department of orders placed from a coffee
// shop, which is the shop's own name. Office orders keep what the employee
// chose.
func (s *Submission) ResolveDepartment() {
	address := location.NormalizeAddress(s.Address)
	if address == location.Office {
		return
	}
	s.Department = location.AddressLabel(s.City, address)
}

// NewID builds an order id of the form order-<unix millis>-<8 hex chars>.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("order-%d-%s", now.UnixMilli(), suffix)
}
