package productService

import (
	"ShopAssistant/internal/api/product"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"ShopAssistant/pkg/s3"
	"errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
)

const (
	defaultPage        = 1
	defaultPerPage     = 20
	maxPerPage         = 100
	defaultSearchLimit = 20
)

func (s *productService) ListProducts(ctx context.Context, req product.ProductListRequest) (*product.ProductListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, product.ErrInvalidPriceRange
	}

	repo, err := s.productRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	page, perPage := normalizePaging(req.Page, req.PerPage)

	filter := entity.ProductQuery{
		CategoryID:    req.CategoryID,
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		Brand:         strings.TrimSpace(req.Brand),
		AvailableOnly: true,
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		filter.Terms = []string{search}
	}

	sort := sortFromRequest(req.SortBy, req.SortOrder)

	total, err := repo.Products.CountProducts(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to count products")
		return nil, product.ErrListProducts
	}

	products, err := repo.Products.ListProducts(ctx, filter, sort, perPage, (page-1)*perPage)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"page":       page,
			"per_page":   perPage,
			"error":      err.Error(),
		}).Error("Failed to list products")
		return nil, product.ErrListProducts
	}

	return &product.ProductListResponse{
		Products:   s.makeProductResponses(ctx, products),
		Pagination: makePagination(page, perPage, total),
		FiltersApplied: product.AppliedFilters{
			CategoryID: req.CategoryID,
			MinPrice:   req.MinPrice,
			MaxPrice:   req.MaxPrice,
			Brand:      filter.Brand,
			Search:     strings.TrimSpace(req.Search),
			SortBy:     string(sort.Field),
			SortOrder:  sortOrderName(sort.Descending),
		},
	}, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*product.ProductResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.productRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	p, err := repo.Products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("Product not found")
		} else {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
				"error":      err.Error(),
			}).Error("Failed to get product")
		}
		return nil, err
	}

	if !p.IsAvailable {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Warn("Product is not available")
		return nil, product.ErrProductNotFound
	}

	resp := s.makeProductResponse(ctx, p)
	return &resp, nil
}

func (s *productService) SearchProducts(ctx context.Context, req product.SearchRequest) (*product.SearchResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Query)
	if text == "" {
		return nil, product.ErrSearchQueryEmpty
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return nil, product.ErrInvalidPriceRange
	}

	limit := req.Limit
	if limit < 1 || limit > maxPerPage {
		limit = defaultSearchLimit
	}

	repo, err := s.productRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	filter := entity.ProductQuery{
		CategoryID:    req.CategoryID,
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		AvailableOnly: true,
	}

	products, err := repo.Products.SearchProducts(ctx, text, filter, limit)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"query":      text,
			"error":      err.Error(),
		}).Error("Failed to search products")
		return nil, product.ErrListProducts
	}

	return &product.SearchResponse{
		Products:   s.makeProductResponses(ctx, products),
		Query:      text,
		TotalFound: len(products),
	}, nil
}

func (s *productService) GetAllCategories(ctx context.Context) (*product.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.productRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	categories, err := repo.Categories.GetAllCategories(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to get categories")
		return nil, product.ErrListCategories
	}

	resp := &product.CategoryListResponse{
		Categories: make([]product.CategoryResponse, 0, len(categories)),
	}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, makeCategoryResponse(category))
	}

	return resp, nil
}

func (s *productService) GetProductsByCategory(ctx context.Context, categoryID string, page, perPage int) (*product.CategoryProductsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.productRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	category, err := repo.Categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, product.ErrCategoryNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id":  requestID,
				"category_id": categoryID,
				"error":       err.Error(),
			}).Error("Failed to get category")
		}
		return nil, err
	}

	page, perPage = normalizePaging(page, perPage)

	filter := entity.ProductQuery{
		CategoryID:    categoryID,
		AvailableOnly: true,
	}

	total, err := repo.Products.CountProducts(ctx, filter)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": categoryID,
			"error":       err.Error(),
		}).Error("Failed to count category products")
		return nil, product.ErrListProducts
	}

	products, err := repo.Products.ListProducts(ctx, filter, entity.SortTopRated, perPage, (page-1)*perPage)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"category_id": categoryID,
			"error":       err.Error(),
		}).Error("Failed to list category products")
		return nil, product.ErrListProducts
	}

	return &product.CategoryProductsResponse{
		Category:   makeCategoryResponse(category),
		Products:   s.makeProductResponses(ctx, products),
		Pagination: makePagination(page, perPage, total),
	}, nil
}

func (s *productService) makeProductResponses(ctx context.Context, products []entity.Product) []product.ProductResponse {
	resp := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, s.makeProductResponse(ctx, p))
	}
	return resp
}

func (s *productService) makeProductResponse(ctx context.Context, p entity.Product) product.ProductResponse {
	return product.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.CategoryName,
		CategoryID:    p.CategoryID,
		Brand:         p.Brand,
		ImageURL:      s.presignImage(ctx, p.ID, p.ImageURL),
		StockQuantity: p.StockQuantity,
		IsAvailable:   p.IsAvailable,
		Rating:        p.Rating,
		Attributes:    p.Attributes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (s *productService) presignImage(ctx context.Context, productID, imageURL string) string {
	if s.s3Client == nil || !s3.IsObjectURL(imageURL) {
		return imageURL
	}

	presignedURL, err := s.s3Client.PresignUrl(imageURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"id":         productID,
			"image_url":  imageURL,
			"error":      err.Error(),
		}).Warn("Failed to create presigned URL for image")
		return imageURL
	}

	return presignedURL
}

func makeCategoryResponse(c entity.Category) product.CategoryResponse {
	return product.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: c.ProductCount,
	}
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}

func makePagination(page, perPage, total int) product.PaginationResponse {
	totalPages := (total + perPage - 1) / perPage
	return product.PaginationResponse{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func sortFromRequest(sortBy, sortOrder string) entity.ProductSort {
	field := entity.SortField(sortBy)
	if !field.Valid() {
		field = entity.SortByName
	}
	return entity.ProductSort{
		Field:      field,
		Descending: strings.EqualFold(sortOrder, "desc"),
	}
}

func sortOrderName(descending bool) string {
	if descending {
		return "desc"
	}
	return "asc"
}
