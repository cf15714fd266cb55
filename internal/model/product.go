package model

import "github.com/almeidarc/affiliate-catalog/internal/store"

// Product is one affiliate item. Column names are snake_case, the JSON
// contract is camelCase; the repository is the only place the two meet.
type Product struct {
	BaseModel
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Price         float64   `db:"price" json:"price"`
	OriginalPrice *float64  `db:"original_price" json:"originalPrice,omitempty"` // Nullable
	Discount      *float64  `db:"discount" json:"discount,omitempty"`            // Nullable, percent 0-100
	Commission    *float64  `db:"commission" json:"commission,omitempty"`        // Nullable, percent 0-100
	ImageURL      string    `db:"image_url" json:"imageUrl"`
	AffiliateLink string    `db:"affiliate_link" json:"affiliateLink"`
	Store         store.Tag `db:"store" json:"store"`
}

// DiscountOrZero reads the discount with a missing value counting as 0.
func (p *Product) DiscountOrZero() float64 {
	if p.Discount == nil {
		return 0
	}
	return *p.Discount
}

// CommissionOrZero reads the commission with a missing value counting as 0.
func (p *Product) CommissionOrZero() float64 {
	if p.Commission == nil {
		return 0
	}
	return *p.Commission
}
