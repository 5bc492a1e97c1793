package product

import (
	"ShopAssistant/pkg/response"
	"net/http"
)

var (
	ErrProductNotFound   = response.NewError(http.StatusNotFound, "product not found")
	ErrCategoryNotFound  = response.NewError(http.StatusNotFound, "category not found")
	ErrSearchQueryEmpty  = response.NewError(http.StatusBadRequest, "search query is required")
	ErrInvalidPriceRange = response.NewError(http.StatusBadRequest, "min_price cannot be greater than max_price")
	ErrListProducts      = response.NewError(http.StatusInternalServerError, "failed to get products")
	ErrListCategories    = response.NewError(http.StatusInternalServerError, "failed to get categories")
)
