package domain

import "strings"

// NormalizeWord is the comparison key for catalog words and progress records:
// lower-cased, trimmed, with inner whitespace runs folded to one space.
// Diacritics, hyphens and apostrophes are kept.
func NormalizeWord(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), " ")
}

// NormalizeLanguage lower-cases and trims a language code.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
