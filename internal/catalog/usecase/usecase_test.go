package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almeidarc/affiliate-catalog/internal/catalog"
	"github.com/almeidarc/affiliate-catalog/internal/catalog/dto"
	"github.com/almeidarc/affiliate-catalog/internal/catalog/usecase"
	"github.com/almeidarc/affiliate-catalog/internal/model"
	"github.com/almeidarc/affiliate-catalog/internal/store"
	"github.com/almeidarc/affiliate-catalog/pkg/logger"
)

// memRepo implements catalog.Repository in memory, insertion-ordered.
type memRepo struct {
	items   []model.Product
	failAll error
}

func (r *memRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := make([]model.Product, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	for _, p := range r.items {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Create(ctx context.Context, p *model.Product) error {
	r.items = append(r.items, *p)
	return nil
}

func (r *memRepo) BulkUpsert(ctx context.Context, ps []model.Product) ([]model.Product, error) {
	for _, p := range ps {
		replaced := false
		for i := range r.items {
			if r.items[i].ID == p.ID {
				r.items[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			r.items = append(r.items, p)
		}
	}
	out := make([]model.Product, len(ps))
	copy(out, ps)
	return out, nil
}

func (r *memRepo) Update(ctx context.Context, p *model.Product) error {
	for i := range r.items {
		if r.items[i].ID == p.ID {
			r.items[i] = *p
			return nil
		}
	}
	return errors.New("missing row")
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func newUseCase(repo *memRepo) catalog.UseCase {
	log := logger.New(&logger.Config{Level: "fatal", Encoding: "json", DisableStacktrace: true})
	return usecase.NewCatalogUseCase(repo, nil, log)
}

func createInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Name:          "Fone Bluetooth",
		Description:   "Com cancelamento de ruido",
		Price:         129.9,
		AffiliateLink: "https://www.amazon.com.br/dp/B0ABC",
	}
}

func TestCreateProductDerivesFields(t *testing.T) {
	repo := &memRepo{}
	uc := newUseCase(repo)

	p, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, store.Amazon, p.Store)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	require.Len(t, repo.items, 1)
}

func TestGetProductNotFound(t *testing.T) {
	uc := newUseCase(&memRepo{})

	_, err := uc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestListProductsAppliesFilters(t *testing.T) {
	repo := &memRepo{}
	uc := newUseCase(repo)

	_, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	mouse := createInput()
	mouse.Name = "Mouse Gamer"
	mouse.AffiliateLink = "https://shopee.com.br/mouse"
	_, err = uc.CreateProduct(context.Background(), mouse)
	require.NoError(t, err)

	filters := &dto.FilterOptions{Search: "fone"}
	require.NoError(t, filters.Normalize())

	got, err := uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Fone Bluetooth", got[0].Name)
}

func TestUpdateProductRecomputesStoreOnLinkChange(t *testing.T) {
	repo := &memRepo{}
	uc := newUseCase(repo)

	created, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)
	require.Equal(t, store.Amazon, created.Store)

	newLink := "https://shopee.com.br/produto/9"
	updated, err := uc.UpdateProduct(context.Background(), created.ID, &dto.UpdateProductInput{
		AffiliateLink: &newLink,
	})
	require.NoError(t, err)

	assert.Equal(t, store.Shopee, updated.Store)
	assert.Equal(t, newLink, updated.AffiliateLink)
	// Everything else untouched except updatedAt.
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateProductWithoutLinkKeepsStore(t *testing.T) {
	repo := &memRepo{}
	uc := newUseCase(repo)

	created, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	name := "Fone Bluetooth v2"
	updated, err := uc.UpdateProduct(context.Background(), created.ID, &dto.UpdateProductInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, store.Amazon, updated.Store)
	assert.Equal(t, name, updated.Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	uc := newUseCase(&memRepo{})

	name := "x"
	_, err := uc.UpdateProduct(context.Background(), "missing", &dto.UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := &memRepo{}
	uc := newUseCase(repo)

	created, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(context.Background(), created.ID))
	assert.Empty(t, repo.items)

	err = uc.DeleteProduct(context.Background(), created.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestImportProductsUpsertsById(t *testing.T) {
	repo := &memRepo{}
	uc := newUseCase(repo)

	batch := []model.Product{
		{BaseModel: model.BaseModel{ID: "p1"}, Name: "Fone", Price: 10, Store: store.Other},
		{BaseModel: model.BaseModel{ID: "p2"}, Name: "Mouse", Price: 20, Store: store.Other},
	}

	saved, err := uc.ImportProducts(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Len(t, repo.items, 2)

	// Re-importing replaces instead of duplicating.
	batch[0].Price = 15
	_, err = uc.ImportProducts(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, repo.items, 2)
	assert.Equal(t, 15.0, repo.items[0].Price)
}
