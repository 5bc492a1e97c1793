package productRepository

import (
	"ShopAssistant/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Products:   &productsRepository{q: sqlExecutor, log: r.log},
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Products interface {
		ListProducts(ctx context.Context, filter entity.ProductQuery, sort entity.ProductSort, limit, offset int) ([]entity.Product, error)
		CountProducts(ctx context.Context, filter entity.ProductQuery) (int, error)
		SearchProducts(ctx context.Context, text string, filter entity.ProductQuery, limit int) ([]entity.Product, error)
		GetProductByID(ctx context.Context, id string) (entity.Product, error)
	}

	Categories interface {
		GetAllCategories(ctx context.Context) ([]entity.Category, error)
		GetCategoryByID(ctx context.Context, id string) (entity.Category, error)
		FindCategoryByName(ctx context.Context, name string) (entity.Category, error)
	}

	Commit   func() error
	Rollback func() error
}

type productsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
