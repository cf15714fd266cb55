package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almeidarc/affiliate-catalog/internal/catalog/dto"
)

func ptr(v float64) *float64 { return &v }

func TestNormalizeDefaults(t *testing.T) {
	f := dto.FilterOptions{}
	require.NoError(t, f.Normalize())

	assert.Equal(t, dto.StoreAll, f.Store)
	assert.Equal(t, dto.SortNewest, f.SortBy)
}

func TestNormalizeAcceptsKnownValues(t *testing.T) {
	f := dto.FilterOptions{
		Store:    "mercadolivre",
		SortBy:   dto.SortCommissionDesc,
		MinPrice: ptr(10),
		MaxPrice: ptr(100),
	}
	require.NoError(t, f.Normalize())
}

func TestNormalizeRejectsMalformedBounds(t *testing.T) {
	tests := []struct {
		name string
		f    dto.FilterOptions
	}{
		{"UnknownStore", dto.FilterOptions{Store: "ebay"}},
		{"UnknownSort", dto.FilterOptions{SortBy: "alphabetical"}},
		{"MinAboveMax", dto.FilterOptions{MinPrice: ptr(100), MaxPrice: ptr(10)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.f.Normalize())
		})
	}
}
