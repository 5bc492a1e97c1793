package productRepository

import (
	"ShopAssistant/internal/api/product"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type ProductDB struct {
	ID            sql.NullString  `db:"id"`
	Name          sql.NullString  `db:"name"`
	Description   sql.NullString  `db:"description"`
	Price         sql.NullFloat64 `db:"price"`
	CategoryID    sql.NullString  `db:"category_id"`
	CategoryName  sql.NullString  `db:"category_name"`
	Brand         sql.NullString  `db:"brand"`
	ImageURL      sql.NullString  `db:"image_url"`
	StockQuantity sql.NullInt64   `db:"stock_quantity"`
	IsAvailable   sql.NullBool    `db:"is_available"`
	Rating        sql.NullFloat64 `db:"rating"`
	Attributes    sql.NullString  `db:"attributes"`
	CreatedAt     sql.NullTime    `db:"created_at"`
	UpdatedAt     sql.NullTime    `db:"updated_at"`
}

func (r *productsRepository) ListProducts(ctx context.Context, filter entity.ProductQuery, sort entity.ProductSort, limit, offset int) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	where, argsKV := buildWhere(filter)
	argsKV["limit"] = limit
	argsKV["offset"] = offset

	query, args, err := sqlx.Named(queryProductColumns+where+buildOrder(sort)+" LIMIT :limit OFFSET :offset", argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListProducts named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []ProductDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListProducts execution err")
		return nil, err
	}

	return r.makeProducts(rows), nil
}

func (r *productsRepository) CountProducts(ctx context.Context, filter entity.ProductQuery) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	where, argsKV := buildWhere(filter)

	query, args, err := sqlx.Named(queryCountProducts+where, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountProducts named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	var total int
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountProducts execution err")
		return 0, err
	}

	return total, nil
}

// SearchProducts matches text against name, description and brand, ranking
// name hits first and then by rating.
func (r *productsRepository) SearchProducts(ctx context.Context, text string, filter entity.ProductQuery, limit int) ([]entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)

	filter.Terms = []string{text}
	filter.TermsMatchBrand = true

	where, argsKV := buildWhere(filter)
	argsKV["search_text"] = containsPattern(text)
	argsKV["limit"] = limit

	order := " ORDER BY " + querySearchRelevance + ", p.rating DESC, p.name ASC"

	query, args, err := sqlx.Named(queryProductColumns+where+order+" LIMIT :limit", argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchProducts named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []ProductDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchProducts execution err")
		return nil, err
	}

	return r.makeProducts(rows), nil
}

func (r *productsRepository) GetProductByID(ctx context.Context, id string) (entity.Product, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row ProductDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetProductByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID named query preparation err")
		return entity.Product{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         id,
			}).Warn("GetProductByID no rows found")
			return entity.Product{}, product.ErrProductNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetProductByID execution err")
		return entity.Product{}, err
	}

	return r.makeProduct(row), nil
}

func (r *productsRepository) makeProducts(rows []ProductDB) []entity.Product {
	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, r.makeProduct(row))
	}
	return products
}

func (r *productsRepository) makeProduct(row ProductDB) entity.Product {
	attributes := map[string]interface{}{}
	if row.Attributes.Valid && row.Attributes.String != "" {
		if err := jsoniter.UnmarshalFromString(row.Attributes.String, &attributes); err != nil {
			r.log.WithFields(logrus.Fields{
				"product_id": row.ID.String,
				"error":      err.Error(),
			}).Warn("Invalid product attributes")
			attributes = map[string]interface{}{}
		}
	}

	return entity.Product{
		ID:            row.ID.String,
		Name:          row.Name.String,
		Description:   row.Description.String,
		Price:         row.Price.Float64,
		CategoryID:    row.CategoryID.String,
		CategoryName:  row.CategoryName.String,
		Brand:         row.Brand.String,
		ImageURL:      row.ImageURL.String,
		StockQuantity: int(row.StockQuantity.Int64),
		IsAvailable:   row.IsAvailable.Bool,
		Rating:        row.Rating.Float64,
		Attributes:    attributes,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
