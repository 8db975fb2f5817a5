package catalog

import (
	"errors"
	"testing"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

func TestLoadEmbedded_AllBundledLanguages(t *testing.T) {
	t.Parallel()

	codes := Available()
	if len(codes) == 0 {
		t.Fatal("expected bundled word lists")
	}

	c, err := LoadEmbedded(codes)
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	for _, code := range codes {
		entries, err := c.Entries(code)
		if err != nil {
			t.Fatalf("Entries(%s): %v", code, err)
		}
		if len(entries) < 8 {
			t.Errorf("%s: expected at least a full daily set of words, got %d", code, len(entries))
		}
		if c.Version(code) == "" {
			t.Errorf("%s: missing version", code)
		}
		hard := 0
		for _, e := range entries {
			if e.Level.IsHard() {
				hard++
			}
			if len(e.Tags) == 0 {
				t.Errorf("%s/%s: no tags", code, e.Word)
			}
		}
		if hard == 0 {
			t.Errorf("%s: no B1+ words", code)
		}
	}
}

func TestLoadEmbedded_UnknownLanguage(t *testing.T) {
	t.Parallel()

	if _, err := LoadEmbedded([]string{"en", "xx"}); err == nil {
		t.Fatal("expected error for language without word list")
	}
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded([]string{"en"})
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	e, ok := c.Lookup("en", "  Ubiquitous ")
	if !ok {
		t.Fatal("expected ubiquitous in en catalog")
	}
	if e.Level != domain.LevelC1 || !e.HasTag("tech") {
		t.Errorf("unexpected entry: %+v", e)
	}

	if _, ok := c.Lookup("en", "no-such-word"); ok {
		t.Error("Lookup should miss unknown word")
	}
	if _, ok := c.Lookup("fr", "hello"); ok {
		t.Error("Lookup should miss unknown language")
	}
}

func TestCatalog_EntriesUnknownLanguage(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Entries("en"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Entries error = %v, want ErrNotFound", err)
	}
	if c.Supports("en") {
		t.Error("empty catalog should not support en")
	}
}

func TestCatalog_EntriesIsACopy(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded([]string{"en"})
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	first, _ := c.Entries("en")
	first[0].Word = "mutated"

	second, _ := c.Entries("en")
	if second[0].Word == "mutated" {
		t.Fatal("Entries must not expose the backing slice")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		wantLen int
	}{
		{
			name: "valid",
			yaml: `
language: en
version: "1"
entries:
  - word: "Hello"
    level: a1
    tags: [greetings]
  - word: ubiquitous
    level: C1
    tags: [tech, " "]
`,
			wantLen: 2,
		},
		{
			name:    "missing language",
			yaml:    "entries: []",
			wantErr: true,
		},
		{
			name: "duplicate after normalisation",
			yaml: `
language: en
entries:
  - {word: hello, level: A1}
  - {word: " HELLO ", level: A2}
`,
			wantErr: true,
		},
		{
			name: "invalid level",
			yaml: `
language: en
entries:
  - {word: hello, level: Z9}
`,
			wantErr: true,
		},
		{
			name: "empty word",
			yaml: `
language: en
entries:
  - {word: "  ", level: A1}
`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "language: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if l.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", l.Len(), tt.wantLen)
			}
		})
	}
}

func TestParse_NormalisesWordsAndTags(t *testing.T) {
	t.Parallel()

	l, err := Parse([]byte(`
language: en
entries:
  - word: "  Break   The Ice "
    level: b1
    tags: [phrases, " ", people]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	c, err := New(l)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e, ok := c.Lookup("en", "break the ice")
	if !ok {
		t.Fatal("expected normalised word to be indexed")
	}
	if e.Level != domain.LevelB1 {
		t.Errorf("Level = %s, want B1", e.Level)
	}
	if len(e.Tags) != 2 {
		t.Errorf("Tags = %v, want blank tag dropped", e.Tags)
	}
}

func TestNew_DuplicateLanguage(t *testing.T) {
	t.Parallel()

	a := &Language{Code: "en"}
	b := &Language{Code: "en"}
	if _, err := New(a, b); err == nil {
		t.Fatal("expected duplicate language error")
	}
}
