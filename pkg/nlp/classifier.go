package nlp

import "regexp"

type intentRule struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// Evaluated top to bottom, first intent with a matching pattern wins.
// Order encodes priority since patterns overlap.
var intentRules = []intentRule{
	{IntentGreeting, compileAll(
		`(hi|hello|hey|good morning|good afternoon|good evening)`,
		`how are you`,
		`what's up`,
	)},
	{IntentProductSearch, compileAll(
		`(show|find|search|look for|need|want|looking for)` + wordGap + `(product|item|thing)`,
		`(show me|find me|search for|look for)`,
		`(laptop|phone|book|shoe|watch|camera|tablet|headphone)`,
		`under \$?\d+`,
		`less than \$?\d+`,
		`between \$?\d+ and \$?\d+`,
	)},
	{IntentPriceFilter, compileAll(
		`under \$?(\d+)`,
		`less than \$?(\d+)`,
		`between \$?(\d+) and \$?(\d+)`,
		`cheaper than \$?(\d+)`,
		`budget.*\$?(\d+)`,
	)},
	{IntentCategoryFilter, compileAll(
		`(electronics|books|clothing|shoes|accessories|home|sports|beauty|toys)`,
		`(smartphone|laptop|tablet|camera|headphone|speaker)`,
		`(fiction|non-fiction|novel|textbook|cookbook)`,
		`(shirt|pant|dress|jacket|sneaker|boot|sandal)`,
	)},
	{IntentBrandFilter, compileAll(
		`(apple|samsung|google|microsoft|sony|nike|adidas|amazon)`,
		`(brand|make|manufacturer)`,
	)},
	{IntentRecommendation, compileAll(
		`(recommend|suggest|what should|best|top|popular|trending)`,
		`(what's good|what do you recommend|any suggestions)`,
	)},
	{IntentHelp, compileAll(
		`(help|how|what can you do|what can i do|commands)`,
	)},
	{IntentGoodbye, compileAll(
		`(bye|goodbye|see you|thanks|thank you|that's all)`,
	)},
}

// compileAll compiles each pattern as a case-insensitive whole-word match.
func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+bounded(p)))
	}
	return out
}

// Classify maps text to exactly one intent. It never fails; text that
// matches no rule, including the empty string, is IntentGeneral.
func Classify(text string) Intent {
	lowered := lower(text)
	for _, rule := range intentRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(lowered) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
