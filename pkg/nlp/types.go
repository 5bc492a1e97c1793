package nlp

// Intent is the classified purpose of a single user utterance.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentProductSearch  Intent = "product_search"
	IntentPriceFilter    Intent = "price_filter"
	IntentCategoryFilter Intent = "category_filter"
	IntentBrandFilter    Intent = "brand_filter"
	IntentRecommendation Intent = "recommendation"
	IntentHelp           Intent = "help"
	IntentGoodbye        Intent = "goodbye"
	IntentGeneral        Intent = "general"
)

var allIntents = []Intent{
	IntentGreeting,
	IntentProductSearch,
	IntentPriceFilter,
	IntentCategoryFilter,
	IntentBrandFilter,
	IntentRecommendation,
	IntentHelp,
	IntentGoodbye,
	IntentGeneral,
}

// Intents returns every label Classify can produce.
func Intents() []Intent {
	out := make([]Intent, len(allIntents))
	copy(out, allIntents)
	return out
}

func (i Intent) String() string {
	return string(i)
}

func (i Intent) Valid() bool {
	for _, known := range allIntents {
		if i == known {
			return true
		}
	}
	return false
}

// EntitySet holds the structured parameters pulled out of one utterance.
// Absent values are zero (strings, slices) or nil (prices).
type EntitySet struct {
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	SearchTerm  string   `json:"search_term,omitempty"`
	SearchTerms []string `json:"search_terms,omitempty"`
}

// Terms returns the text terms to match against the catalog. A keyword set
// by category detection takes precedence and the free terms are ignored.
func (e EntitySet) Terms() []string {
	if e.SearchTerm != "" {
		return []string{e.SearchTerm}
	}
	if len(e.SearchTerms) == 0 {
		return nil
	}
	out := make([]string, len(e.SearchTerms))
	copy(out, e.SearchTerms)
	return out
}

func (e EntitySet) IsEmpty() bool {
	return e.Category == "" &&
		e.Brand == "" &&
		e.MinPrice == nil &&
		e.MaxPrice == nil &&
		e.SearchTerm == "" &&
		len(e.SearchTerms) == 0
}
