package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/almeidarc/affiliate-catalog/internal/catalog/dto"
	"github.com/almeidarc/affiliate-catalog/internal/model"
)

// Filter runs the query pipeline over an in-memory product set: search,
// store, price bounds and discount bound in that order, then a stable sort.
// The input slice is never mutated; the result is always a fresh slice.
func Filter(products []model.Product, f *dto.FilterOptions) []model.Product {
	out := make([]model.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	storeFilter := f.Store
	if storeFilter == "" {
		storeFilter = dto.StoreAll
	}

	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if storeFilter != dto.StoreAll && string(p.Store) != storeFilter {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.MinDiscount != nil && p.DiscountOrZero() < *f.MinDiscount {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.SortBy)
	return out
}

// sortProducts orders in place, stably so that equal keys keep their prior
// relative order.
func sortProducts(ps []model.Product, sortBy string) {
	switch sortBy {
	case dto.SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b model.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case dto.SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b model.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case dto.SortCommissionAsc:
		slices.SortStableFunc(ps, func(a, b model.Product) int {
			return cmp.Compare(a.CommissionOrZero(), b.CommissionOrZero())
		})
	case dto.SortCommissionDesc:
		slices.SortStableFunc(ps, func(a, b model.Product) int {
			return cmp.Compare(b.CommissionOrZero(), a.CommissionOrZero())
		})
	default: // newest first
		slices.SortStableFunc(ps, func(a, b model.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
