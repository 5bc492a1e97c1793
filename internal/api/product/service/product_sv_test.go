package productService

import (
	"ShopAssistant/internal/api/product"
	productRepository "ShopAssistant/internal/api/product/repository"
	"ShopAssistant/internal/entity"
	"ShopAssistant/pkg/assistant"
	redisPkg "ShopAssistant/pkg/redis"
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ assistant.Catalog = (*Catalog)(nil)

var productColumns = []string{
	"id", "name", "description", "price", "category_id", "category_name", "brand",
	"image_url", "stock_quantity", "is_available", "rating", "attributes", "created_at", "updated_at",
}

var categoryColumns = []string{"id", "name", "description", "created_at", "product_count"}

type fakeS3 struct {
	calls int
	err   error
}

func (f *fakeS3) PresignUrl(fileUrl string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fileUrl + "?signed=1", nil
}

func newTestRepo(t *testing.T) (productRepository.Repository, sqlmock.Sqlmock, *logrus.Logger) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return productRepository.New(sqlx.NewDb(db, "postgres"), log), mock, log
}

func productRow(id string, available bool, imageURL string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productColumns).AddRow(
		id, "Kindle Paperwhite", "E-reader", 139.99, "c1", "Electronics", "Amazon",
		imageURL, 5, available, 4.6, nil, now, now,
	)
}

func TestGetProductByIDPresignsS3Images(t *testing.T) {
	repo, mock, log := newTestRepo(t)
	s3 := &fakeS3{}
	svc := NewProductService(log, repo, s3)

	imageURL := "https://assets.s3.amazonaws.com/p1.jpg"
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("p1").
		WillReturnRows(productRow("p1", true, imageURL))

	got, err := svc.GetProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, imageURL+"?signed=1", got.ImageURL)
	assert.Equal(t, "Electronics", got.Category)
	assert.NotNil(t, got.Attributes)
	assert.Equal(t, 1, s3.calls)
}

func TestGetProductByIDKeepsURLWhenPresignFails(t *testing.T) {
	repo, mock, log := newTestRepo(t)
	svc := NewProductService(log, repo, &fakeS3{err: errors.New("head object")})

	imageURL := "https://assets.s3.amazonaws.com/p1.jpg"
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("p1").
		WillReturnRows(productRow("p1", true, imageURL))

	got, err := svc.GetProductByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, imageURL, got.ImageURL)
}

func TestGetProductByIDUnavailableIsNotFound(t *testing.T) {
	repo, mock, log := newTestRepo(t)
	svc := NewProductService(log, repo, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("p9").
		WillReturnRows(productRow("p9", false, ""))

	_, err := svc.GetProductByID(context.Background(), "p9")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestListProductsRejectsInvertedPriceRange(t *testing.T) {
	repo, _, log := newTestRepo(t)
	svc := NewProductService(log, repo, nil)

	minPrice, maxPrice := 500.0, 100.0
	_, err := svc.ListProducts(context.Background(), product.ProductListRequest{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	assert.ErrorIs(t, err, product.ErrInvalidPriceRange)
}

func TestListProductsPaginates(t *testing.T) {
	repo, mock, log := newTestRepo(t)
	svc := NewProductService(log, repo, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.price DESC, p.name ASC LIMIT $1 OFFSET $2")).
		WithArgs(20, 20).
		WillReturnRows(productRow("p1", true, ""))

	got, err := svc.ListProducts(context.Background(), product.ProductListRequest{
		Page:      2,
		PerPage:   20,
		SortBy:    "price",
		SortOrder: "desc",
	})
	require.NoError(t, err)

	assert.Len(t, got.Products, 1)
	assert.Equal(t, product.PaginationResponse{
		Page: 2, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true,
	}, got.Pagination)
	assert.Equal(t, "price", got.FiltersApplied.SortBy)
	assert.Equal(t, "desc", got.FiltersApplied.SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchProductsRequiresQuery(t *testing.T) {
	repo, _, log := newTestRepo(t)
	svc := NewProductService(log, repo, nil)

	_, err := svc.SearchProducts(context.Background(), product.SearchRequest{Query: "   "})
	assert.ErrorIs(t, err, product.ErrSearchQueryEmpty)
}

func TestGetProductsByCategoryMissing(t *testing.T) {
	repo, mock, log := newTestRepo(t)
	svc := NewProductService(log, repo, nil)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetProductsByCategory(context.Background(), "nope", 1, 20)
	assert.ErrorIs(t, err, product.ErrCategoryNotFound)
}

func TestMakePagination(t *testing.T) {
	assert.Equal(t, product.PaginationResponse{Page: 1, PerPage: 20}, makePagination(1, 20, 0))
	assert.Equal(t, 1, makePagination(1, 20, 20).TotalPages)
	assert.Equal(t, 2, makePagination(1, 20, 21).TotalPages)
}

func TestSortFromRequest(t *testing.T) {
	assert.Equal(t, entity.ProductSort{Field: entity.SortByName}, sortFromRequest("", ""))
	assert.Equal(t, entity.ProductSort{Field: entity.SortByRating, Descending: true}, sortFromRequest("rating", "DESC"))
	assert.Equal(t, entity.ProductSort{Field: entity.SortByName}, sortFromRequest("stock", "asc"))
}

func newTestCatalog(t *testing.T) (*Catalog, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	repo, mock, log := newTestRepo(t)
	mr := miniredis.RunT(t)
	cache := redisPkg.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	return NewCatalog(log, repo, cache, time.Hour), mock, mr
}

func TestCatalogCachesCategoryLookups(t *testing.T) {
	catalog, mock, mr := newTestCatalog(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.name ILIKE $1")).
		WithArgs("%electronics%").
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow("c1", "Electronics", "", time.Now(), 10))

	first, err := catalog.FindCategoryByName(ctx, "Electronics")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := catalog.FindCategoryByName(ctx, "electronics")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, "c1", second.ID)
	assert.True(t, mr.Exists(categoryCachePrefix+"electronics"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogDoesNotCacheMisses(t *testing.T) {
	catalog, mock, mr := newTestCatalog(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE c.name ILIKE $1")).
			WithArgs("%toys%").
			WillReturnError(sql.ErrNoRows)
	}

	for i := 0; i < 2; i++ {
		got, err := catalog.FindCategoryByName(ctx, "Toys")
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	assert.False(t, mr.Exists(categoryCachePrefix+"toys"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogPropagatesStoreErrors(t *testing.T) {
	catalog, mock, _ := newTestCatalog(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products p")).
		WillReturnError(errors.New("connection reset"))

	_, err := catalog.QueryProducts(context.Background(), entity.ProductQuery{AvailableOnly: true}, entity.SortTopRated, 10)
	assert.Error(t, err)
}
