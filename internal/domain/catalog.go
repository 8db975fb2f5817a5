package domain

import "strings"

// CatalogEntry is an immutable learnable word or phrase.
type CatalogEntry struct {
	Word  string
	Level CEFRLevel
	Tags  []string
}

// HasTag reports whether the entry is tagged with topic (case-insensitive).
func (e CatalogEntry) HasTag(topic string) bool {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return false
	}
	for _, t := range e.Tags {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}
