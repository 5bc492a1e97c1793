package nlp

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"empty string", "", IntentGeneral},
		{"greeting", "hello there", IntentGreeting},
		{"greeting is case insensitive", "HEY!", IntentGreeting},
		{"greeting wins over search", "hi, show me laptops", IntentGreeting},
		{"product search with price", "Show me laptops under $800", IntentProductSearch},
		{"product keyword alone", "a good camera", IntentProductSearch},
		{"price range counts as search", "between $10 and $50", IntentProductSearch},
		{"price filter", "anything cheaper than $30", IntentPriceFilter},
		{"budget", "my budget is 200", IntentPriceFilter},
		{"category filter", "do you have electronics", IntentCategoryFilter},
		{"clothing word", "a red jacket", IntentCategoryFilter},
		{"brand filter", "samsung stuff", IntentBrandFilter},
		{"recommendation", "what's popular right now", IntentRecommendation},
		{"help", "what can you do", IntentHelp},
		{"goodbye", "thanks, bye", IntentGoodbye},
		{"no match", "xyzzy plugh", IntentGeneral},
		{"substring does not count as word", "this is sharp", IntentGeneral},
		{"words apart", "i want that blue thing", IntentProductSearch},
		{"accented letters extend a word", "hié", IntentGeneral},
		{"keyword inside accented word", "chiébook", IntentGeneral},
		{"keyword next to punctuation", "¿un laptop?", IntentProductSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_AlwaysReturnsKnownLabel(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz $0123456789,.!?'-éü漢字🙂\t\n")

	inputs := []string{
		"",
		"   ",
		"!!!???",
		"\xff\xfe invalid utf8",
		strings.Repeat("laptop under $5 ", 2000),
	}
	for i := 0; i < 200; i++ {
		n := r.Intn(60)
		b := make([]rune, n)
		for j := range b {
			b[j] = alphabet[r.Intn(len(alphabet))]
		}
		inputs = append(inputs, string(b))
	}

	for _, in := range inputs {
		got := Classify(in)
		assert.True(t, got.Valid(), "unexpected label %q for %q", got, in)
	}
}

func TestIntents(t *testing.T) {
	all := Intents()
	assert.Len(t, all, 9)
	assert.Contains(t, all, IntentGeneral)

	all[0] = "mutated"
	assert.Equal(t, IntentGreeting, Intents()[0])
}
