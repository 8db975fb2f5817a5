package domain

import "time"

// DefaultProfileLevel is assumed for learners without a stored profile.
const DefaultProfileLevel = LevelB1

// UserProfile holds learner preferences used to tailor practice and chat.
type UserProfile struct {
	UserID         string
	DisplayName    string
	Level          CEFRLevel
	NativeLanguage string
	TargetLanguage string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultUserProfile returns the profile served before the learner saves one.
func DefaultUserProfile(userID string) UserProfile {
	return UserProfile{
		UserID:         userID,
		Level:          DefaultProfileLevel,
		TargetLanguage: "en",
	}
}
