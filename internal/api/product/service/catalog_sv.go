package productService

import (
	"ShopAssistant/internal/api/product"
	productRepository "ShopAssistant/internal/api/product/repository"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	redisPkg "ShopAssistant/pkg/redis"
	"context"
	"errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"strings"
	"time"
)

const categoryCachePrefix = "catalog:category:"

// Catalog serves the assistant from the product repository. Category name
// lookups are cached when a cache is given; misses are never cached.
type Catalog struct {
	log         *logrus.Logger
	productRepo productRepository.Repository
	cache       redisPkg.IRedis
	ttl         time.Duration
}

func NewCatalog(
	log *logrus.Logger,
	productRepo productRepository.Repository,
	cache redisPkg.IRedis,
	ttl time.Duration,
) *Catalog {
	return &Catalog{
		log:         log,
		productRepo: productRepo,
		cache:       cache,
		ttl:         ttl,
	}
}

func (c *Catalog) FindCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	key := categoryCachePrefix + strings.ToLower(strings.TrimSpace(name))

	if cached, ok := c.cachedCategory(ctx, key); ok {
		return cached, nil
	}

	repo, err := c.productRepo.NewClient(false)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	category, err := repo.Categories.FindCategoryByName(ctx, name)
	if err != nil {
		if errors.Is(err, product.ErrCategoryNotFound) {
			return nil, nil
		}
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"category":   name,
			"error":      err.Error(),
		}).Error("Failed to resolve category")
		return nil, err
	}

	c.storeCategory(ctx, key, category)
	return &category, nil
}

func (c *Catalog) QueryProducts(ctx context.Context, query entity.ProductQuery, sort entity.ProductSort, limit int) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := c.productRepo.NewClient(false)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	products, err := repo.Products.ListProducts(ctx, query, sort, limit, 0)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to query products")
		return nil, err
	}

	return products, nil
}

func (c *Catalog) cachedCategory(ctx context.Context, key string) (*entity.Category, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redisPkg.ErrKeyNotFound) {
			c.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"key":        key,
				"error":      err.Error(),
			}).Warn("Category cache read failed")
		}
		return nil, false
	}

	var category entity.Category
	if err := jsoniter.UnmarshalFromString(raw, &category); err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Warn("Category cache entry is corrupt")
		return nil, false
	}

	return &category, true
}

func (c *Catalog) storeCategory(ctx context.Context, key string, category entity.Category) {
	if c.cache == nil {
		return
	}

	raw, err := jsoniter.MarshalToString(category)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Warn("Category cache write failed")
	}
}
