package domain

import "testing"

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim", input: "  hello  ", want: "hello"},
		{name: "lowercase", input: "Thank You", want: "thank you"},
		{name: "inner spaces folded", input: "thank   you", want: "thank you"},
		{name: "tabs and newlines folded", input: "\tthank\n you\t", want: "thank you"},
		{name: "diacritics kept", input: "Mañana", want: "mañana"},
		{name: "hyphen kept", input: "well-known", want: "well-known"},
		{name: "apostrophe kept", input: "don't", want: "don't"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \t ", want: ""},
		{name: "inverted punctuation kept", input: "¿Qué?", want: "¿qué?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeWord(tt.input); got != tt.want {
				t.Errorf("NormalizeWord(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"en": "en", " ES ": "es", "": ""} {
		if got := NormalizeLanguage(in); got != want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
