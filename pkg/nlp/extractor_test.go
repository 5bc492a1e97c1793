package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 {
	return &v
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want EntitySet
	}{
		{
			name: "category keyword sets search term",
			text: "I need a laptop",
			want: EntitySet{Category: "Electronics", SearchTerm: "laptop"},
		},
		{
			name: "plural keyword and max price",
			text: "Show me laptops under $800",
			want: EntitySet{Category: "Electronics", SearchTerm: "laptop", MaxPrice: price(800)},
		},
		{
			name: "price range only",
			text: "between $10 and $50",
			want: EntitySet{MinPrice: price(10), MaxPrice: price(50), SearchTerms: []string{"between", "and"}},
		},
		{
			name: "from to range",
			text: "from 20 to 40",
			want: EntitySet{MinPrice: price(20), MaxPrice: price(40), SearchTerms: []string{"from"}},
		},
		{
			name: "thousands separator and decimals",
			text: "under $1,200.50 please",
			want: EntitySet{MaxPrice: price(1200.5), SearchTerms: []string{"under", "please"}},
		},
		{
			name: "budget takes the whole amount",
			text: "budget is $500",
			want: EntitySet{MaxPrice: price(500), SearchTerms: []string{"budget"}},
		},
		{
			name: "brand is title cased",
			text: "Nike running shoes",
			want: EntitySet{Category: "Shoes", SearchTerm: "shoe", Brand: "Nike"},
		},
		{
			name: "short brand",
			text: "cheap hp stuff",
			want: EntitySet{Brand: "Hp", SearchTerms: []string{"cheap", "stuff"}},
		},
		{
			name: "earlier category wins",
			text: "a phone and a book",
			want: EntitySet{Category: "Electronics", SearchTerm: "phone"},
		},
		{
			name: "es plural",
			text: "red dresses",
			want: EntitySet{Category: "Clothing", SearchTerm: "dress"},
		},
		{
			name: "stop words numbers and short tokens dropped",
			text: "a b cd 123 4567 xyz",
			want: EntitySet{SearchTerms: []string{"xyz"}},
		},
		{
			name: "duplicates and order kept",
			text: "blue lamp blue",
			want: EntitySet{SearchTerms: []string{"blue", "lamp", "blue"}},
		},
		{
			name: "unicode words",
			text: "Café crème brûlée",
			want: EntitySet{SearchTerms: []string{"café", "crème", "brûlée"}},
		},
		{
			name: "keyword inside accented word",
			text: "un téléphone",
			want: EntitySet{SearchTerms: []string{"téléphone"}},
		},
		{
			name: "brand inside accented word",
			text: "sonyé",
			want: EntitySet{SearchTerms: []string{"sonyé"}},
		},
		{
			name: "keyword between accented words",
			text: "élégant laptop à vendre",
			want: EntitySet{Category: "Electronics", SearchTerm: "laptop"},
		},
		{
			name: "category names are not keywords",
			text: "cheap accessories",
			want: EntitySet{SearchTerms: []string{"cheap", "accessories"}},
		},
		{
			name: "empty",
			text: "",
			want: EntitySet{},
		},
		{
			name: "punctuation only",
			text: "!!!???",
			want: EntitySet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_PriceSignalsDoNotAccumulate(t *testing.T) {
	got := Extract("between $10 and $50")

	require.NotNil(t, got.MinPrice)
	require.NotNil(t, got.MaxPrice)
	assert.Equal(t, 10.0, *got.MinPrice)
	assert.Equal(t, 50.0, *got.MaxPrice)

	got = Extract("under $30 or between $10 and $50")
	assert.Nil(t, got.MinPrice)
	require.NotNil(t, got.MaxPrice)
	assert.Equal(t, 30.0, *got.MaxPrice)
}

func TestExtract_Idempotent(t *testing.T) {
	inputs := []string{
		"Show me Apple laptops between $500 and $1,500",
		"what's good for kids",
		strings.Repeat("gaming keyboard ", 500),
		"\xff\xfe",
	}
	for _, in := range inputs {
		assert.Equal(t, Extract(in), Extract(in))
	}
}

func TestEntitySet_Terms(t *testing.T) {
	both := EntitySet{SearchTerm: "laptop", SearchTerms: []string{"gaming", "laptop"}}
	assert.Equal(t, []string{"laptop"}, both.Terms())

	plural := EntitySet{SearchTerms: []string{"gaming", "mouse"}}
	assert.Equal(t, []string{"gaming", "mouse"}, plural.Terms())

	assert.Nil(t, EntitySet{}.Terms())
	assert.True(t, EntitySet{}.IsEmpty())
	assert.False(t, plural.IsEmpty())
}
