package order

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/xtanyr/lunch/internal/location"
)

type partition struct {
	mu      sync.Mutex
	city    string
	address string
	orders  []EmployeeOrder
}

// InMemoryRepository keeps orders in process memory. Writes to one partition
// are serialised by that partition's mutex.
type InMemoryRepository struct {
	mu         sync.RWMutex
	partitions map[string]*partition
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{partitions: make(map[string]*partition)}
}

func (r *InMemoryRepository) get(p location.Partition, create bool) *partition {
	key := p.Key()

	r.mu.RLock()
	part, ok := r.partitions[key]
	r.mu.RUnlock()
	if ok || !create {
		return part
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if part, ok = r.partitions[key]; !ok {
		part = &partition{city: p.City, address: p.Address}
		r.partitions[key] = part
	}
	return part
}

func (p *partition) byDate(date string) []EmployeeOrder {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := []EmployeeOrder{}
	for _, o := range p.orders {
		if o.OrderDate == date {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

func (r *InMemoryRepository) ListByDate(_ context.Context, p location.Partition, date string) ([]EmployeeOrder, error) {
	part := r.get(p, false)
	if part == nil {
		return []EmployeeOrder{}, nil
	}
	return part.byDate(date), nil
}

func (r *InMemoryRepository) ListByCity(_ context.Context, city, date string) ([]EmployeeOrder, error) {
	out := []EmployeeOrder{}
	for _, part := range r.cityPartitions(city) {
		out = append(out, part.byDate(date)...)
	}
	return out, nil
}

func (r *InMemoryRepository) ListAddresses(_ context.Context, city string) ([]string, error) {
	parts := r.cityPartitions(city)
	addresses := make([]string, 0, len(parts))
	for _, part := range parts {
		part.mu.Lock()
		if len(part.orders) > 0 {
			addresses = append(addresses, part.address)
		}
		part.mu.Unlock()
	}
	slices.Sort(addresses)
	return addresses, nil
}

func (r *InMemoryRepository) cityPartitions(city string) []*partition {
	cityKey := location.CityKey(city)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*partition
	for _, part := range r.partitions {
		if location.SafeSegment(part.city) == cityKey {
			out = append(out, part)
		}
	}
	slices.SortFunc(out, func(a, b *partition) int {
		return strings.Compare(a.address, b.address)
	})
	return out
}

func (r *InMemoryRepository) Append(_ context.Context, o *EmployeeOrder) error {
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now().UTC()
	}
	if o.ID == "" {
		o.ID = NewID(o.Timestamp)
	}

	part := r.get(o.Partition(), true)
	part.mu.Lock()
	defer part.mu.Unlock()

	part.orders = append(part.orders, cloneOrder(*o))
	return nil
}

func (r *InMemoryRepository) DeleteByID(_ context.Context, p location.Partition, id string) (bool, error) {
	part := r.get(p, false)
	if part == nil {
		return false, nil
	}

	part.mu.Lock()
	defer part.mu.Unlock()

	i := slices.IndexFunc(part.orders, func(o EmployeeOrder) bool { return o.ID == id })
	if i < 0 {
		return false, nil
	}
	part.orders = slices.Delete(part.orders, i, i+1)
	return true, nil
}

func cloneOrder(o EmployeeOrder) EmployeeOrder {
	o.Items = append([]Item(nil), o.Items...)
	return o
}
