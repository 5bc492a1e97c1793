package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// amount accepts plain integers, comma thousands separators and decimals.
const amount = `(\d+(?:,\d{3})*(?:\.\d+)?)`

type priceRule struct {
	pattern *regexp.Regexp
	isRange bool
}

var priceRules = []priceRule{
	{regexp.MustCompile(leftEdge + `under \$?` + amount), false},
	{regexp.MustCompile(leftEdge + `less than \$?` + amount), false},
	{regexp.MustCompile(leftEdge + `cheaper than \$?` + amount), false},
	{regexp.MustCompile(leftEdge + `budget.*?\$?` + amount), false},
	{regexp.MustCompile(leftEdge + `between \$?` + amount + ` and \$?` + amount), true},
	{regexp.MustCompile(leftEdge + `from \$?` + amount + ` to \$?` + amount), true},
}

type categoryRule struct {
	name     string
	keywords []string
	patterns []*regexp.Regexp
}

func newCategoryRule(name string, keywords ...string) categoryRule {
	rule := categoryRule{name: name, keywords: keywords}
	for _, kw := range keywords {
		// plain plurals resolve to the singular keyword
		rule.patterns = append(rule.patterns, regexp.MustCompile(`(?i)`+bounded(regexp.QuoteMeta(kw)+`(?:e?s)?`)))
	}
	return rule
}

// Scanned in order, first keyword hit across the whole table wins.
var categoryRules = []categoryRule{
	newCategoryRule("Electronics", "laptop", "phone", "smartphone", "tablet", "camera", "headphone", "speaker", "computer"),
	newCategoryRule("Books", "book", "novel", "fiction", "non-fiction", "textbook", "cookbook", "biography"),
	newCategoryRule("Clothing", "shirt", "pant", "dress", "jacket", "clothes", "clothing"),
	newCategoryRule("Shoes", "shoe", "sneaker", "boot", "sandal", "footwear"),
	newCategoryRule("Accessories", "watch", "jewelry", "bag", "wallet", "accessory"),
	newCategoryRule("Home", "furniture", "kitchen", "bedroom", "living room", "home"),
	newCategoryRule("Sports", "sports", "fitness", "exercise", "gym", "outdoor"),
	newCategoryRule("Beauty", "beauty", "makeup", "skincare", "cosmetics"),
	newCategoryRule("Toys", "toy", "game", "kids", "children", "baby"),
}

var brandPattern = regexp.MustCompile(`(?i)` + bounded(`(apple|samsung|google|microsoft|sony|nike|adidas|amazon|hp|dell|asus|lenovo)`))

var stopWords = map[string]struct{}{
	"i": {}, "need": {}, "want": {}, "looking": {}, "for": {}, "show": {}, "me": {},
	"find": {}, "search": {}, "get": {}, "buy": {}, "purchase": {}, "a": {}, "an": {},
	"the": {}, "some": {}, "any": {},
}

// Extract pulls price bounds, category, brand and free search terms out of
// text. It is total and deterministic: the same text always yields the same
// set and no input makes it fail.
func Extract(text string) EntitySet {
	lowered := lower(text)

	var entities EntitySet
	extractPrice(lowered, &entities)
	extractCategory(lowered, &entities)

	if m := brandPattern.FindStringSubmatch(lowered); m != nil {
		entities.Brand = title(m[1])
	}

	if entities.SearchTerm == "" {
		var terms []string
		for _, token := range tokenize(lowered) {
			if keepTerm(token) {
				terms = append(terms, token)
			}
		}
		if len(terms) > 0 {
			entities.SearchTerms = terms
		}
	}

	return entities
}

func extractPrice(text string, entities *EntitySet) {
	for _, rule := range priceRules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if rule.isRange {
			low, errLow := parseAmount(m[1])
			high, errHigh := parseAmount(m[2])
			if errLow == nil && errHigh == nil {
				entities.MinPrice = &low
				entities.MaxPrice = &high
			}
		} else if v, err := parseAmount(m[1]); err == nil {
			entities.MaxPrice = &v
		}
		return
	}
}

func extractCategory(text string, entities *EntitySet) {
	for _, rule := range categoryRules {
		for i, pattern := range rule.patterns {
			if pattern.MatchString(text) {
				entities.Category = rule.name
				entities.SearchTerm = rule.keywords[i]
				return
			}
		}
	}
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

func keepTerm(token string) bool {
	if _, stop := stopWords[token]; stop {
		return false
	}
	if runeLen(token) <= 2 {
		return false
	}
	return !isNumeric(token)
}
