package productService

import (
	"ShopAssistant/internal/api/product"
	productRepository "ShopAssistant/internal/api/product/repository"
	"ShopAssistant/pkg/s3"
	"context"
	"github.com/sirupsen/logrus"
)

type IProductService interface {
	ListProducts(ctx context.Context, req product.ProductListRequest) (*product.ProductListResponse, error)
	GetProductByID(ctx context.Context, id string) (*product.ProductResponse, error)
	SearchProducts(ctx context.Context, req product.SearchRequest) (*product.SearchResponse, error)
	GetAllCategories(ctx context.Context) (*product.CategoryListResponse, error)
	GetProductsByCategory(ctx context.Context, categoryID string, page, perPage int) (*product.CategoryProductsResponse, error)
}

type productService struct {
	log         *logrus.Logger
	productRepo productRepository.Repository
	s3Client    s3.ItfS3
}

// NewProductService builds the catalog service. s3Client may be nil, in
// which case stored image URLs are returned as they are.
func NewProductService(
	log *logrus.Logger,
	productRepo productRepository.Repository,
	s3Client s3.ItfS3,
) IProductService {
	return &productService{
		log:         log,
		productRepo: productRepo,
		s3Client:    s3Client,
	}
}
