package assistant

import (
	"ShopAssistant/internal/entity"
	"ShopAssistant/pkg/nlp"
	"context"
	"math/rand"
)

// Catalog is the product store the assistant reads from.
type Catalog interface {
	// FindCategoryByName returns the first category whose name contains
	// name, case-insensitively, or nil when none does.
	FindCategoryByName(ctx context.Context, name string) (*entity.Category, error)
	QueryProducts(ctx context.Context, query entity.ProductQuery, sort entity.ProductSort, limit int) ([]entity.Product, error)
}

type Result struct {
	Response string           `json:"response"`
	Intent   nlp.Intent       `json:"intent"`
	Entities nlp.EntitySet    `json:"entities"`
	Products []entity.Product `json:"products"`
}

type Option func(*Processor)

// WithRandom replaces the source used to pick greeting and farewell
// templates. fn must return a value in [0, n).
func WithRandom(fn func(n int) int) Option {
	return func(p *Processor) {
		p.intn = fn
	}
}

// Processor turns one user message into a reply. It holds no per-call state
// and is safe for concurrent use.
type Processor struct {
	catalog Catalog
	intn    func(n int) int
}

func New(catalog Catalog, opts ...Option) *Processor {
	p := &Processor{
		catalog: catalog,
		intn:    rand.Intn,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process classifies message, extracts its entities and dispatches to the
// matching handler. Catalog errors are returned as is.
func (p *Processor) Process(ctx context.Context, message string, userID string) (*Result, error) {
	intent := nlp.Classify(message)
	entities := nlp.Extract(message)

	var (
		text     string
		products []entity.Product
		err      error
	)

	switch intent {
	case nlp.IntentGreeting:
		text = p.pick(greetings)
	case nlp.IntentHelp:
		text = helpText
	case nlp.IntentGoodbye:
		text = p.pick(farewells)
	case nlp.IntentProductSearch:
		text, products, err = p.search(ctx, entities)
	case nlp.IntentRecommendation:
		text, products, err = p.recommend(ctx, entities)
	default:
		text, products, err = p.generalSearch(ctx, entities)
	}
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []entity.Product{}
	}

	return &Result{
		Response: text,
		Intent:   intent,
		Entities: entities,
		Products: products,
	}, nil
}

func (p *Processor) pick(pool []string) string {
	return pool[p.intn(len(pool))]
}
