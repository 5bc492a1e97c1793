package assistant

import (
	"ShopAssistant/internal/entity"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const descriptionLimit = 100

func searchText(products []entity.Product, applied []string) string {
	var b strings.Builder

	plural := "s"
	if len(products) == 1 {
		plural = ""
	}
	fmt.Fprintf(&b, "Great! I found %d product%s for you%s:\n\n", len(products), plural, filterSuffix(applied))

	for i, product := range head(products, searchShown) {
		fmt.Fprintf(&b, "%d. **%s** - $%.2f\n", i+1, product.Name, product.Price)
		if product.Brand != "" {
			fmt.Fprintf(&b, "   Brand: %s\n", product.Brand)
		}
		fmt.Fprintf(&b, "   Rating: %s (%s/5)\n", stars(product.Rating), formatNumber(product.Rating))
		if product.Description != "" {
			fmt.Fprintf(&b, "   %s\n", truncate(product.Description, descriptionLimit))
		}
		b.WriteString("\n")
	}

	if len(products) > searchShown {
		fmt.Fprintf(&b, "...and %d more products! Check the product list below.", len(products)-searchShown)
	}

	return strings.TrimSpace(b.String())
}

func recommendationText(products []entity.Product) string {
	var b strings.Builder
	b.WriteString("Here are my top recommendations for you:\n\n")

	for i, product := range head(products, recommendShown) {
		category := product.CategoryName
		if category == "" {
			category = "Product"
		}
		fmt.Fprintf(&b, "%d. **%s** - $%.2f\n", i+1, product.Name, product.Price)
		fmt.Fprintf(&b, "   %s (%s/5) | %s\n", stars(product.Rating), formatNumber(product.Rating), category)
		if product.Brand != "" {
			fmt.Fprintf(&b, "   Brand: %s\n", product.Brand)
		}
		b.WriteString("\n")
	}

	b.WriteString("These are highly rated by our customers! Need something more specific? Just ask! 😊")
	return b.String()
}

func generalText(products []entity.Product) string {
	var b strings.Builder
	b.WriteString("I found some products that might interest you:\n\n")

	for i, product := range head(products, generalShown) {
		fmt.Fprintf(&b, "%d. **%s** - $%.2f\n", i+1, product.Name, product.Price)
		fmt.Fprintf(&b, "   %s (%s/5)\n\n", stars(product.Rating), formatNumber(product.Rating))
	}

	b.WriteString("Is this what you were looking for? You can also try:\n")
	b.WriteString("• Being more specific: 'Show me laptops under $800'\n")
	b.WriteString("• Asking for recommendations: 'What's popular?'\n")
	b.WriteString("• Getting help: 'What can you do?'")
	return b.String()
}

func noMatchText(applied []string) string {
	var b strings.Builder
	b.WriteString("I couldn't find any products matching your criteria")
	b.WriteString(filterSuffix(applied))
	b.WriteString(". Try:\n\n")
	b.WriteString("• Adjusting your price range\n")
	b.WriteString("• Using different keywords\n")
	b.WriteString("• Browsing our categories\n")
	b.WriteString("• Asking for recommendations")
	return b.String()
}

func filterSuffix(applied []string) string {
	if len(applied) == 0 {
		return ""
	}
	return " (" + joinComma(applied) + ")"
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}

func head(products []entity.Product, n int) []entity.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

// stars renders one glyph per whole rating point, clamped to 0..5.
func stars(rating float64) string {
	n := int(math.Floor(rating))
	n = max(0, min(n, 5))
	return strings.Repeat("⭐", n)
}

// formatNumber prints the shortest exact representation, keeping a
// trailing ".0" on whole numbers: 800 -> "800.0", 19.99 -> "19.99".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
