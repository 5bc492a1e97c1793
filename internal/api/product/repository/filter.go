package productRepository

import (
	"ShopAssistant/internal/entity"
	"fmt"
	"strings"
)

var sortColumns = map[entity.SortField]string{
	entity.SortByName:      "p.name",
	entity.SortByPrice:     "p.price",
	entity.SortByRating:    "p.rating",
	entity.SortByCreatedAt: "p.created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern wraps s for a case-insensitive substring ILIKE match.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildWhere turns filter into a WHERE clause with named parameters.
func buildWhere(filter entity.ProductQuery) (string, map[string]interface{}) {
	var conds []string
	args := map[string]interface{}{}

	if filter.AvailableOnly {
		conds = append(conds, "p.is_available = TRUE")
	}
	if filter.CategoryID != "" {
		conds = append(conds, "p.category_id = :category_id")
		args["category_id"] = filter.CategoryID
	}
	if filter.MinPrice != nil {
		conds = append(conds, "p.price >= :min_price")
		args["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "p.price <= :max_price")
		args["max_price"] = *filter.MaxPrice
	}
	if filter.Brand != "" {
		conds = append(conds, "p.brand ILIKE :brand")
		args["brand"] = containsPattern(filter.Brand)
	}

	if len(filter.Terms) > 0 {
		var anyTerm []string
		for i, term := range filter.Terms {
			key := fmt.Sprintf("term_%d", i)
			args[key] = containsPattern(term)

			match := fmt.Sprintf("p.name ILIKE :%s OR p.description ILIKE :%s", key, key)
			if filter.TermsMatchBrand {
				match += fmt.Sprintf(" OR p.brand ILIKE :%s", key)
			}
			anyTerm = append(anyTerm, match)
		}
		conds = append(conds, "("+strings.Join(anyTerm, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildOrder always breaks ties by name so results are stable.
func buildOrder(sort entity.ProductSort) string {
	column, ok := sortColumns[sort.Field]
	if !ok {
		column = sortColumns[entity.SortByRating]
	}

	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	order := " ORDER BY " + column + " " + direction
	if column != sortColumns[entity.SortByName] {
		order += ", p.name ASC"
	}
	return order
}
