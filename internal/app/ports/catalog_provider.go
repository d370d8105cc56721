package ports

import "context"

// CatalogProvider serves the read-only reference tables (jobs, items,
// universities, majors, clubs, quest templates). The core never mutates them.
type CatalogProvider interface {
	Index(ctx context.Context) ([]byte, error)
	Catalog(ctx context.Context, name string) ([]byte, error)
}
