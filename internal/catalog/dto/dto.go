package dto

import (
	"fmt"

	"github.com/almeidarc/affiliate-catalog/internal/store"
)

// StoreAll selects every retailer.
const StoreAll = "all"

const (
	SortPriceAsc       = "price-asc"
	SortPriceDesc      = "price-desc"
	SortCommissionAsc  = "commission-asc"
	SortCommissionDesc = "commission-desc"
	SortNewest         = "newest"
)

// FilterOptions is the query specification applied to the product list.
// It lives in a request, never in storage.
type FilterOptions struct {
	Search      string   `form:"search"`
	Store       string   `form:"store"`
	MinPrice    *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice    *float64 `form:"max_price" binding:"omitempty,gte=0"`
	MinDiscount *float64 `form:"min_discount" binding:"omitempty,gte=0,lte=100"`
	SortBy      string   `form:"sort_by"`
}

// Normalize fills defaults and rejects malformed bounds before any
// gateway call is made.
func (f *FilterOptions) Normalize() error {
	if f.Store == "" {
		f.Store = StoreAll
	}
	if f.SortBy == "" {
		f.SortBy = SortNewest
	}

	if f.Store != StoreAll {
		if _, err := store.Parse(f.Store); err != nil {
			return fmt.Errorf("invalid store filter: %w", err)
		}
	}

	switch f.SortBy {
	case SortPriceAsc, SortPriceDesc, SortCommissionAsc, SortCommissionDesc, SortNewest:
	default:
		return fmt.Errorf("invalid sort option %q", f.SortBy)
	}

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("min_price %v is greater than max_price %v", *f.MinPrice, *f.MaxPrice)
	}

	return nil
}
