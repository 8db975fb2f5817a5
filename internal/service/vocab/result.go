package vocab

import "github.com/heartmarshall/lingua-assistant-backend/internal/domain"

// DailyWordsResult is a daily practice set plus the learner's counters.
type DailyWordsResult struct {
	Language string
	Topic    string
	Words    []domain.DailyWord
	Stats    domain.ProgressStats
}

// ProgressResult lists a learner's materialised records in one language.
type ProgressResult struct {
	Language string
	Records  []domain.WordProgress
	Stats    domain.ProgressStats
	Recent   []domain.AnswerLog
}
