package product

import "time"

type ProductListRequest struct {
	Page       int      `query:"page" validate:"min=1"`
	PerPage    int      `query:"per_page" validate:"min=1,max=100"`
	CategoryID string   `query:"category_id" validate:"omitempty"`
	MinPrice   *float64 `query:"min_price" validate:"omitempty,min=0"`
	MaxPrice   *float64 `query:"max_price" validate:"omitempty,min=0"`
	Brand      string   `query:"brand" validate:"omitempty,max=100"`
	Search     string   `query:"search" validate:"omitempty,max=200"`
	SortBy     string   `query:"sort_by" validate:"omitempty,oneof=name price rating created_at"`
	SortOrder  string   `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type SearchRequest struct {
	Query      string   `query:"q" validate:"required,max=200"`
	Limit      int      `query:"limit" validate:"min=1,max=100"`
	CategoryID string   `query:"category_id" validate:"omitempty"`
	MinPrice   *float64 `query:"min_price" validate:"omitempty,min=0"`
	MaxPrice   *float64 `query:"max_price" validate:"omitempty,min=0"`
}

type ProductResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price"`
	Category      string                 `json:"category"`
	CategoryID    string                 `json:"category_id"`
	Brand         string                 `json:"brand"`
	ImageURL      string                 `json:"image_url"`
	StockQuantity int                    `json:"stock_quantity"`
	IsAvailable   bool                   `json:"is_available"`
	Rating        float64                `json:"rating"`
	Attributes    map[string]interface{} `json:"attributes"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type AppliedFilters struct {
	CategoryID string   `json:"category_id,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	Brand      string   `json:"brand,omitempty"`
	Search     string   `json:"search,omitempty"`
	SortBy     string   `json:"sort_by"`
	SortOrder  string   `json:"sort_order"`
}

type ProductListResponse struct {
	Products       []ProductResponse  `json:"products"`
	Pagination     PaginationResponse `json:"pagination"`
	FiltersApplied AppliedFilters     `json:"filters_applied"`
}

type SearchResponse struct {
	Products   []ProductResponse `json:"products"`
	Query      string            `json:"query"`
	TotalFound int               `json:"total_found"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int    `json:"product_count"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CategoryProductsResponse struct {
	Category   CategoryResponse   `json:"category"`
	Products   []ProductResponse  `json:"products"`
	Pagination PaginationResponse `json:"pagination"`
}
