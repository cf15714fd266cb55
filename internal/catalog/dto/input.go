package dto

type CreateProductInput struct {
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description" binding:"max=1000"`
	Price         float64  `json:"price" binding:"required,gte=0.01"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	Discount      *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Commission    *float64 `json:"commission" binding:"omitempty,gte=0,lte=100"`
	ImageURL      string   `json:"imageUrl" binding:"omitempty,url"`
	AffiliateLink string   `json:"affiliateLink" binding:"required,url"`
}

// UpdateProductInput carries a partial update; nil fields keep the stored
// value. The store tag is not accepted here, it is recomputed from the
// affiliate link.
type UpdateProductInput struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string  `json:"description" binding:"omitempty,max=1000"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0.01"`
	OriginalPrice *float64 `json:"originalPrice" binding:"omitempty,gte=0"`
	Discount      *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Commission    *float64 `json:"commission" binding:"omitempty,gte=0,lte=100"`
	ImageURL      *string  `json:"imageUrl" binding:"omitempty,url"`
	AffiliateLink *string  `json:"affiliateLink" binding:"omitempty,url"`
}
