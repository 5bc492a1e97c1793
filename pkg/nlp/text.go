package nlp

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// wordChars is the character class of a word for tokenizing and for the
// keyword boundaries below. RE2's \b only knows ASCII word characters.
const wordChars = `\p{L}\p{N}_`

const (
	leftEdge  = `(?:^|[^` + wordChars + `])`
	rightEdge = `(?:$|[^` + wordChars + `])`
	// wordGap separates two words with anything in between.
	wordGap = `[^` + wordChars + `](?:.*[^` + wordChars + `])?`
)

var wordPattern = regexp.MustCompile(`[` + wordChars + `]+`)

// bounded matches p only as whole words.
func bounded(p string) string {
	return leftEdge + p + rightEdge
}

// lower normalizes to NFC before case folding so composed and decomposed
// input compare equal. Casers are stateful, so one is built per call.
func lower(text string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(text))
}

func title(word string) string {
	return cases.Title(language.English).String(word)
}

func tokenize(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
