package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rrens/reservasi-bot/internal/domain"
)

// ConversationLogRepository implements domain.ConversationLogRepository
type ConversationLogRepository struct {
	db *sql.DB
}

// Append inserts one chat turn
func (r *ConversationLogRepository) Append(ctx context.Context, entry *domain.ConversationLog) error {
	query := `INSERT INTO conversation_logs (id, session_id, user_message, bot_response, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID.String(),
		entry.SessionID,
		entry.UserMessage,
		entry.BotResponse,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append conversation log: %w", err)
	}

	return nil
}
