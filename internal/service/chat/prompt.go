package chat

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/lingua-assistant-backend/internal/domain"
)

var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"ru": "Russian",
	"de": "German",
	"fr": "French",
	"it": "Italian",
	"pt": "Portuguese",
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// buildSystemPrompt tailors the tutor persona to the learner's level.
func buildSystemPrompt(p domain.UserProfile, language string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a friendly %s tutor chatting with a learner at CEFR level %s.\n",
		languageName(language), p.Level)
	if p.DisplayName != "" {
		fmt.Fprintf(&sb, "The learner's name is %s.\n", p.DisplayName)
	}

	sb.WriteString("\nRules:\n")
	fmt.Fprintf(&sb, "- Reply in %s using vocabulary and grammar appropriate for %s.\n", languageName(language), p.Level)
	sb.WriteString("- Keep replies short and conversational; ask a follow-up question.\n")
	sb.WriteString("- When the learner makes a mistake, show the corrected sentence briefly before continuing.\n")
	if p.NativeLanguage != "" && p.NativeLanguage != language {
		fmt.Fprintf(&sb, "- If the learner is stuck, you may explain a word in %s.\n", languageName(p.NativeLanguage))
	}
	if !p.Level.IsHard() {
		sb.WriteString("- Prefer present tense and common everyday words.\n")
	}
	return sb.String()
}
