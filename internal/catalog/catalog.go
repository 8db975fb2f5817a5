// Package catalog holds the static, versioned vocabulary lists the learner
// practises from. A Catalog is built once at startup and is safe for
// concurrent reads without synchronisation.
package catalog

import (
	"fmt"
	"slices"
	"sort"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

// Language is the word list of one target language.
type Language struct {
	Code    string
	Version string
	entries []domain.CatalogEntry
	index   map[string]int
}

// Catalog maps language codes to their word lists.
type Catalog struct {
	langs map[string]*Language
}

// New builds a Catalog from already-parsed languages.
// Duplicate language codes are rejected.
func New(langs ...*Language) (*Catalog, error) {
	c := &Catalog{langs: make(map[string]*Language, len(langs))}
	for _, l := range langs {
		if _, dup := c.langs[l.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate language %q", l.Code)
		}
		c.langs[l.Code] = l
	}
	return c, nil
}

// Entries returns the entries of a language in catalog order.
// The returned slice is a copy; the entries' Tags are shared and must not be modified.
func (c *Catalog) Entries(language string) ([]domain.CatalogEntry, error) {
	l, ok := c.langs[language]
	if !ok {
		return nil, fmt.Errorf("catalog language %q: %w", language, domain.ErrNotFound)
	}
	return slices.Clone(l.entries), nil
}

// Lookup returns the entry for a normalised word.
func (c *Catalog) Lookup(language, word string) (domain.CatalogEntry, bool) {
	l, ok := c.langs[language]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	i, ok := l.index[domain.NormalizeWord(word)]
	if !ok {
		return domain.CatalogEntry{}, false
	}
	return l.entries[i], true
}

// Supports reports whether a word list exists for the language.
func (c *Catalog) Supports(language string) bool {
	_, ok := c.langs[language]
	return ok
}

// Languages returns the loaded language codes, sorted.
func (c *Catalog) Languages() []string {
	codes := make([]string, 0, len(c.langs))
	for code := range c.langs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Version returns the list version of a language, or "" when not loaded.
func (c *Catalog) Version(language string) string {
	if l, ok := c.langs[language]; ok {
		return l.Version
	}
	return ""
}

// Len returns the number of entries of a language.
func (l *Language) Len() int { return len(l.entries) }
