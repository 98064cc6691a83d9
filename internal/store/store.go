// Package store loads the read-only hardware catalogs the build engine
// consumes. Persistence of user builds, accounts and pricing pipelines lives
// in other services; this store only reads part records.
package store

import (
	"context"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// CatalogStore supplies the part catalogs for one or more searches. The
// returned Catalog is a snapshot: the engine may hold it for the duration of
// a request without further coordination.
type CatalogStore interface {
	LoadCatalog(ctx context.Context) (*parts.Catalog, error)
	Close() error
}
