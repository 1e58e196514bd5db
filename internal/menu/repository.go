package menu

import "context"

// SharedKey is the city key under which the shared default catalog and
// config are stored.
const SharedKey = ""

// Repository persists catalogs and menu configs per city key. A missing
// record is reported through found=false, not an error.
type Repository interface {
	GetCatalog(
		ctx context.Context,
		cityKey string,
	) (catalog Catalog, found bool, err error)

	SaveCatalog(
		ctx context.Context,
		cityKey string,
		catalog Catalog,
	) error

	GetConfig(
		ctx context.Context,
		cityKey string,
	) (cfg Config, found bool, err error)

	SaveConfig(
		ctx context.Context,
		cityKey string,
		cfg Config,
	) error
}
