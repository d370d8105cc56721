package catalog

import (
	"context"

	"campuslife/internal/app/ports"
)

// UseCase exposes the read-only reference tables to the UI layer.
type UseCase struct {
	Provider ports.CatalogProvider
}

func (u UseCase) Index(ctx context.Context) ([]byte, error) {
	return u.Provider.Index(ctx)
}

func (u UseCase) Catalog(ctx context.Context, name string) ([]byte, error) {
	return u.Provider.Catalog(ctx, name)
}
