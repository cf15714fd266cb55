package catalog

import (
	"context"

	"github.com/almeidarc/affiliate-catalog/internal/catalog/dto"
	"github.com/almeidarc/affiliate-catalog/internal/model"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.FilterOptions) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// ImportProducts bulk-upserts previously exported records, keyed on id.
	// The one-time local migration runs through it.
	ImportProducts(ctx context.Context, ps []model.Product) ([]model.Product, error)
}
