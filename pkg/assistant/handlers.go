package assistant

import (
	"ShopAssistant/internal/entity"
	"ShopAssistant/pkg/nlp"
	"context"
)

const (
	searchLimit    = 10
	searchShown    = 5
	recommendLimit = 8
	recommendShown = 4
	generalLimit   = 8
	generalShown   = 3
)

// criteria builds the catalog query for entities along with the
// human-readable list of filters that were applied.
func (p *Processor) criteria(ctx context.Context, entities nlp.EntitySet, termsMatchBrand bool) (entity.ProductQuery, []string, error) {
	query := entity.ProductQuery{AvailableOnly: true}
	var applied []string

	if entities.Category != "" {
		category, err := p.catalog.FindCategoryByName(ctx, entities.Category)
		if err != nil {
			return entity.ProductQuery{}, nil, err
		}
		if category != nil {
			query.CategoryID = category.ID
			applied = append(applied, "category: "+category.Name)
		}
	}

	if entities.MaxPrice != nil {
		query.MaxPrice = entities.MaxPrice
		applied = append(applied, "under $"+formatNumber(*entities.MaxPrice))
	}
	if entities.MinPrice != nil {
		query.MinPrice = entities.MinPrice
		applied = append(applied, "over $"+formatNumber(*entities.MinPrice))
	}
	if entities.MinPrice != nil && entities.MaxPrice != nil {
		applied = append(applied[:len(applied)-2],
			"$"+formatNumber(*entities.MinPrice)+" - $"+formatNumber(*entities.MaxPrice))
	}

	if entities.Brand != "" {
		query.Brand = entities.Brand
		applied = append(applied, "brand: "+entities.Brand)
	}

	if terms := entities.Terms(); len(terms) > 0 {
		query.Terms = terms
		query.TermsMatchBrand = termsMatchBrand
		applied = append(applied, "matching: "+joinComma(terms))
	}

	return query, applied, nil
}

func (p *Processor) search(ctx context.Context, entities nlp.EntitySet) (string, []entity.Product, error) {
	query, applied, err := p.criteria(ctx, entities, false)
	if err != nil {
		return "", nil, err
	}

	products, err := p.catalog.QueryProducts(ctx, query, entity.SortTopRated, searchLimit)
	if err != nil {
		return "", nil, err
	}
	if len(products) == 0 {
		return noMatchText(applied), nil, nil
	}

	return searchText(products, applied), products, nil
}

// recommend only honours category and max price.
func (p *Processor) recommend(ctx context.Context, entities nlp.EntitySet) (string, []entity.Product, error) {
	query := entity.ProductQuery{AvailableOnly: true}

	if entities.Category != "" {
		category, err := p.catalog.FindCategoryByName(ctx, entities.Category)
		if err != nil {
			return "", nil, err
		}
		if category != nil {
			query.CategoryID = category.ID
		}
	}
	query.MaxPrice = entities.MaxPrice

	products, err := p.catalog.QueryProducts(ctx, query, entity.SortTopRated, recommendLimit)
	if err != nil {
		return "", nil, err
	}
	if len(products) == 0 {
		return noRecommendationText, nil, nil
	}

	return recommendationText(products), products, nil
}

// generalSearch serves intents without a dedicated handler. With nothing to
// filter on it skips the catalog and answers with the fixed suggestions.
func (p *Processor) generalSearch(ctx context.Context, entities nlp.EntitySet) (string, []entity.Product, error) {
	if entities.IsEmpty() {
		return noMatchText(nil), nil, nil
	}

	query, applied, err := p.criteria(ctx, entities, entities.SearchTerm == "")
	if err != nil {
		return "", nil, err
	}
	if !query.HasCriteria() {
		return noMatchText(applied), nil, nil
	}

	products, err := p.catalog.QueryProducts(ctx, query, entity.SortTopRated, generalLimit)
	if err != nil {
		return "", nil, err
	}
	if len(products) == 0 {
		return noMatchText(applied), nil, nil
	}

	return generalText(products), products, nil
}
