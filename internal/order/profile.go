package order

import (
	"sync"

	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/location"
)

// Profile is the per-employee state used to prefill the next draft: where
// they order from, who they are, and which day they will most likely order
// for next.
type Profile struct {
	mu sync.Mutex

	City          string
	Address       string
	EmployeeName  string
	Department    string
	NextOrderDate string
}

// NewProfile starts a profile for a location with today as the next date.
func NewProfile(city, address string, clock calendar.Clock) *Profile {
	return &Profile{
		City:          location.NormalizeCity(city),
		Address:       location.NormalizeAddress(address),
		NextOrderDate: calendar.Today(clock),
	}
}

// Remember records an accepted order. It has the AcceptedHook signature.
func (p *Profile) Remember(o EmployeeOrder) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.EmployeeName = o.EmployeeName
	p.Department = o.Department
	if next, err := calendar.AddDays(o.OrderDate, 1); err == nil {
		p.NextOrderDate = next
	}
}

// Prefill builds an empty submission carrying the remembered details.
func (p *Profile) Prefill() Submission {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Submission{
		EmployeeName: p.EmployeeName,
		Department:   p.Department,
		OrderDate:    p.NextOrderDate,
		Address:      p.Address,
		City:         p.City,
	}
}

// Submission turns a composed draft into a submission for this profile.
func (p *Profile) Submission(d *Draft) Submission {
	sub := p.Prefill()
	sub.Items = d.Items()
	sub.ResolveDepartment()
	return sub
}
