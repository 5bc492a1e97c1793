package productRepository

import (
	"ShopAssistant/internal/api/product"
	"ShopAssistant/internal/entity"
	contextPkg "ShopAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CategoryDB struct {
	ID           sql.NullString `db:"id"`
	Name         sql.NullString `db:"name"`
	Description  sql.NullString `db:"description"`
	CreatedAt    sql.NullTime   `db:"created_at"`
	ProductCount sql.NullInt64  `db:"product_count"`
}

func (r *categoriesRepository) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []CategoryDB

	query, args, err := sqlx.Named(queryGetAllCategories, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllCategories named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllCategories execution err")
		return nil, err
	}

	categories := make([]entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, r.makeCategory(row))
	}

	return categories, nil
}

func (r *categoriesRepository) GetCategoryByID(ctx context.Context, id string) (entity.Category, error) {
	return r.getOne(ctx, queryGetCategoryByID, map[string]interface{}{"id": id}, "GetCategoryByID")
}

// FindCategoryByName returns the first category, by name, that contains
// name case-insensitively.
func (r *categoriesRepository) FindCategoryByName(ctx context.Context, name string) (entity.Category, error) {
	return r.getOne(ctx, queryFindCategoryByName, map[string]interface{}{"name": containsPattern(name)}, "FindCategoryByName")
}

func (r *categoriesRepository) getOne(ctx context.Context, namedQuery string, argsKV map[string]interface{}, op string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row CategoryDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Debug(op + " no rows found")
			return entity.Category{}, product.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Category{}, err
	}

	return r.makeCategory(row), nil
}

func (r *categoriesRepository) makeCategory(row CategoryDB) entity.Category {
	return entity.Category{
		ID:           row.ID.String,
		Name:         row.Name.String,
		Description:  row.Description.String,
		ProductCount: int(row.ProductCount.Int64),
		CreatedAt:    row.CreatedAt.Time,
	}
}
