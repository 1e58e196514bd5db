package blackout

// Range is an inclusive span of dates during which a city takes no orders.
type Range struct {
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
	Message   string `json:"message" validate:"required"`
}

// Contains compares zero-padded ISO dates as strings, inclusive on both ends.
func (r Range) Contains(date string) bool {
	return date >= r.StartDate && date <= r.EndDate
}

// Status is the answer to "can this city order for this date?".
type Status struct {
	Disabled bool   `json:"disabled"`
	Message  string `json:"message,omitempty"`
}
