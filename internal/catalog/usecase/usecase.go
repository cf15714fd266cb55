package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/almeidarc/affiliate-catalog/internal/catalog"
	"github.com/almeidarc/affiliate-catalog/internal/catalog/dto"
	"github.com/almeidarc/affiliate-catalog/internal/model"
	"github.com/almeidarc/affiliate-catalog/internal/store"
	"github.com/almeidarc/affiliate-catalog/pkg/cache"
	"github.com/almeidarc/affiliate-catalog/pkg/logger"
)

const (
	listCacheKey = "catalog:products:all"
	listCacheTTL = 5 * time.Minute
)

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	logger logger.Logger
}

// NewCatalogUseCase wires the catalog rules. cache may be nil, reads then
// always go to the repository.
func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, log logger.Logger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	p := &model.Product{
		BaseModel:     model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Discount:      input.Discount,
		Commission:    input.Commission,
		ImageURL:      input.ImageURL,
		AffiliateLink: input.AffiliateLink,
		Store:         store.Classify(input.AffiliateLink),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())

	return p, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.FilterOptions) ([]model.Product, error) {
	products, err := uc.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(products, filters), nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, catalog.ErrNotFound
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		p.OriginalPrice = input.OriginalPrice
	}
	if input.Discount != nil {
		p.Discount = input.Discount
	}
	if input.Commission != nil {
		p.Commission = input.Commission
	}
	if input.ImageURL != nil {
		p.ImageURL = *input.ImageURL
	}
	if input.AffiliateLink != nil {
		// The store tag is derived state, never set directly.
		p.AffiliateLink = *input.AffiliateLink
		p.Store = store.Classify(*input.AffiliateLink)
	}

	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())

	return p, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return catalog.ErrNotFound
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())

	return nil
}

func (uc *catalogUseCase) ImportProducts(ctx context.Context, ps []model.Product) ([]model.Product, error) {
	if len(ps) == 0 {
		return []model.Product{}, nil
	}

	saved, err := uc.repo.BulkUpsert(ctx, ps)
	if err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())

	return saved, nil
}

// loadAll serves the full authoritative set, through the Redis projection
// when available.
func (uc *catalogUseCase) loadAll(ctx context.Context) ([]model.Product, error) {
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, listCacheKey).Result()
		if err == nil {
			var products []model.Product
			if err := json.Unmarshal([]byte(val), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			uc.cache.Client.Set(ctx, listCacheKey, data, listCacheTTL)
		}
	}

	return products, nil
}

func (uc *catalogUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, listCacheKey).Err(); err != nil {
		uc.logger.Error("failed to invalidate product list cache", zap.Error(err))
	}
}
