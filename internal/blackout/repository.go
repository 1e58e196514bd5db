package blackout

import "context"

// Repository stores at most one Range per city key.
type Repository interface {
	Get(ctx context.Context, cityKey string) (*Range, error)
	// Put stores r, or clears the city's range when r is nil.
	Put(ctx context.Context, cityKey string, r *Range) error
}
