package domain

import "strings"

// WordStatus is the mastery state of a vocabulary item for one learner.
// StatusNew is virtual: it is never persisted and only describes catalog
// entries the learner has not answered yet.
type WordStatus string

const (
	StatusNew      WordStatus = "New"
	StatusLearning WordStatus = "Learning"
	StatusWeak     WordStatus = "Weak"
	StatusKnown    WordStatus = "Known"
)

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusWeak, StatusKnown:
		return true
	}
	return false
}

// IsPersistable reports whether a record with this status may be stored.
func (s WordStatus) IsPersistable() bool {
	return s.IsValid() && s != StatusNew
}

// ParseWordStatus matches a status name case-insensitively.
func ParseWordStatus(raw string) (WordStatus, bool) {
	for _, s := range []WordStatus{StatusNew, StatusLearning, StatusWeak, StatusKnown} {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, true
		}
	}
	return "", false
}

// CEFRLevel is a CEFR-like difficulty tag.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

func (l CEFRLevel) String() string { return string(l) }

func (l CEFRLevel) IsValid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// IsHard reports whether the level is intermediate or above (B1..C2).
func (l CEFRLevel) IsHard() bool {
	switch l {
	case LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// ChatRole identifies the author of a conversation message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }

func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleAssistant
}
