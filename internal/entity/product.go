package entity

import "time"

type Product struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         float64                `json:"price"`
	CategoryID    string                 `json:"category_id"`
	CategoryName  string                 `json:"category"`
	Brand         string                 `json:"brand"`
	ImageURL      string                 `json:"image_url"`
	StockQuantity int                    `json:"stock_quantity"`
	IsAvailable   bool                   `json:"is_available"`
	Rating        float64                `json:"rating"`
	Attributes    map[string]interface{} `json:"attributes"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductQuery is a conjunction of product predicates. Zero fields are not
// applied. Terms match when any one of them is a case-insensitive substring
// of the name or description, and also the brand when TermsMatchBrand is set.
type ProductQuery struct {
	CategoryID      string
	MinPrice        *float64
	MaxPrice        *float64
	Brand           string
	Terms           []string
	TermsMatchBrand bool
	AvailableOnly   bool
}

// HasCriteria reports whether any predicate besides availability is set.
func (q ProductQuery) HasCriteria() bool {
	return q.CategoryID != "" ||
		q.MinPrice != nil ||
		q.MaxPrice != nil ||
		q.Brand != "" ||
		len(q.Terms) > 0
}

type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByRating    SortField = "rating"
	SortByCreatedAt SortField = "created_at"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByPrice, SortByRating, SortByCreatedAt:
		return true
	}
	return false
}

// ProductSort orders by Field and then by name ascending.
type ProductSort struct {
	Field      SortField
	Descending bool
}

var SortTopRated = ProductSort{Field: SortByRating, Descending: true}
