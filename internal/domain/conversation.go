package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConversationLog is one user utterance and the reply sent back for it
type ConversationLog struct {
	ID          uuid.UUID `json:"id"`
	SessionID   string    `json:"session_id"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConversationLogRepository is an append-only audit sink for chat turns
type ConversationLogRepository interface {
	Append(ctx context.Context, entry *ConversationLog) error
}
