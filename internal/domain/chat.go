package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn of a stored conversation.
type ChatMessage struct {
	ID        uuid.UUID
	UserID    string
	Language  string
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}
