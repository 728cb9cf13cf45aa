package postgres

import (
	"context"
	"fmt"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationLogRepository implements domain.ConversationLogRepository
type ConversationLogRepository struct {
	pool *pgxpool.Pool
}

// NewConversationLogRepository creates a new conversation log repository
func NewConversationLogRepository(pool *pgxpool.Pool) *ConversationLogRepository {
	return &ConversationLogRepository{pool: pool}
}

// Append inserts one chat turn
func (r *ConversationLogRepository) Append(ctx context.Context, entry *domain.ConversationLog) error {
	query := `
		INSERT INTO conversation_logs (id, session_id, user_message, bot_response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.UserMessage,
		entry.BotResponse,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append conversation log: %w", err)
	}

	return nil
}
