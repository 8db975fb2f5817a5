package catalog

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

type yamlLanguage struct {
	Language string      `yaml:"language"`
	Version  string      `yaml:"version"`
	Entries  []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Word  string   `yaml:"word"`
	Level string   `yaml:"level"`
	Tags  []string `yaml:"tags"`
}

// LoadEmbedded parses the bundled word lists for the requested languages.
func LoadEmbedded(languages []string) (*Catalog, error) {
	langs := make([]*Language, 0, len(languages))
	for _, code := range languages {
		code = strings.TrimSpace(code)
		raw, err := dataFS.ReadFile(path.Join("data", code+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("catalog: no word list for language %q: %w", code, err)
		}
		l, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", code, err)
		}
		if l.Code != code {
			return nil, fmt.Errorf("catalog: file for %q declares language %q", code, l.Code)
		}
		langs = append(langs, l)
	}
	return New(langs...)
}

// Available lists the language codes that have a bundled word list.
func Available() []string {
	files, err := dataFS.ReadDir("data")
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(files))
	for _, f := range files {
		codes = append(codes, strings.TrimSuffix(f.Name(), ".yaml"))
	}
	return codes
}

// Parse decodes one YAML word list. Words are normalised and must be unique;
// levels must be A1..C2.
func Parse(raw []byte) (*Language, error) {
	var doc yamlLanguage
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	code := strings.TrimSpace(doc.Language)
	if code == "" {
		return nil, fmt.Errorf("language code is required")
	}

	l := &Language{
		Code:    code,
		Version: strings.TrimSpace(doc.Version),
		entries: make([]domain.CatalogEntry, 0, len(doc.Entries)),
		index:   make(map[string]int, len(doc.Entries)),
	}

	for i, e := range doc.Entries {
		word := domain.NormalizeWord(e.Word)
		if word == "" {
			return nil, fmt.Errorf("entry %d: word is required", i)
		}
		if _, dup := l.index[word]; dup {
			return nil, fmt.Errorf("entry %d: duplicate word %q", i, word)
		}
		level := domain.CEFRLevel(strings.ToUpper(strings.TrimSpace(e.Level)))
		if !level.IsValid() {
			return nil, fmt.Errorf("entry %d (%s): invalid level %q", i, word, e.Level)
		}

		tags := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}

		l.index[word] = len(l.entries)
		l.entries = append(l.entries, domain.CatalogEntry{Word: word, Level: level, Tags: tags})
	}

	return l, nil
}
