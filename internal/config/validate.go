package config

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/lingua-assistant-backend/internal/catalog"
)

// supportedFormats are the audio formats the speech proxy can return.
var supportedFormats = []string{"mp3", "opus", "aac", "flac", "wav"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if len(c.Auth.AllowedUsers()) == 0 {
		return fmt.Errorf("auth.allowed_users must list at least one user")
	}
	if c.Database.TxMaxRetries < 0 {
		return fmt.Errorf("database.tx_max_retries must be >= 0 (got %d)", c.Database.TxMaxRetries)
	}

	if err := c.Vocab.validate(); err != nil {
		return fmt.Errorf("vocab: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.TTS.validate(); err != nil {
		return fmt.Errorf("tts: %w", err)
	}
	if c.RateLimit.ChatPerMinute < 0 || c.RateLimit.TTSPerMinute < 0 {
		return fmt.Errorf("rate_limit: per-minute limits must be >= 0 (0 disables)")
	}

	return nil
}

func (v *VocabConfig) validate() error {
	if v.DailyCount <= 0 {
		return fmt.Errorf("daily_count must be > 0 (got %d)", v.DailyCount)
	}
	if v.WeakQuota < 0 || v.ReviewQuota < 0 {
		return fmt.Errorf("quotas must be >= 0")
	}
	if v.WeakQuota+v.ReviewQuota > v.DailyCount {
		return fmt.Errorf("weak_quota + review_quota (%d) exceeds daily_count (%d)", v.WeakQuota+v.ReviewQuota, v.DailyCount)
	}
	if v.Cooldown <= 0 {
		return fmt.Errorf("cooldown must be > 0 (got %s)", v.Cooldown)
	}
	langs := v.Languages()
	if len(langs) == 0 {
		return fmt.Errorf("languages must list at least one language")
	}
	available := catalog.Available()
	for _, l := range langs {
		if !slices.Contains(available, l) {
			return fmt.Errorf("language %q has no bundled catalog (available: %v)", l, available)
		}
	}
	return nil
}

func (l *LLMConfig) validate() error {
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0 (got %d)", l.HistoryLimit)
	}
	return nil
}

func (t *TTSConfig) validate() error {
	if t.MaxChars <= 0 {
		return fmt.Errorf("max_chars must be > 0 (got %d)", t.MaxChars)
	}
	if !slices.Contains(supportedFormats, t.Format) {
		return fmt.Errorf("format %q not supported", t.Format)
	}
	return nil
}
