package catalog

import (
	"context"
	"errors"

	"github.com/almeidarc/affiliate-catalog/internal/model"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	// FindAll returns the full catalog ordered by created_at descending.
	FindAll(ctx context.Context) ([]model.Product, error)
	// FindByID returns nil without error when no row matches.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	// BulkUpsert inserts or replaces rows keyed on id and returns the
	// authoritative records.
	BulkUpsert(ctx context.Context, ps []model.Product) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
}
