package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// conversationLogDocument is the stored shape of a chat turn
type conversationLogDocument struct {
	ID          string    `bson:"_id"`
	SessionID   string    `bson:"session_id"`
	UserMessage string    `bson:"user_message"`
	BotResponse string    `bson:"bot_response"`
	CreatedAt   time.Time `bson:"created_at"`
}

func newConversationLogDocument(entry *domain.ConversationLog) conversationLogDocument {
	return conversationLogDocument{
		ID:          entry.ID.String(),
		SessionID:   entry.SessionID,
		UserMessage: entry.UserMessage,
		BotResponse: entry.BotResponse,
		CreatedAt:   entry.CreatedAt.UTC(),
	}
}

// ConversationLogRepository implements domain.ConversationLogRepository
type ConversationLogRepository struct {
	collection *mongo.Collection
}

// NewConversationLogRepository creates a repository writing to the named collection
func NewConversationLogRepository(client *Client, collection string) *ConversationLogRepository {
	return &ConversationLogRepository{collection: client.db.Collection(collection)}
}

// EnsureIndexes creates the session lookup index
func (r *ConversationLogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("session_created"),
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation log index: %w", err)
	}
	return nil
}

// Append inserts one chat turn
func (r *ConversationLogRepository) Append(ctx context.Context, entry *domain.ConversationLog) error {
	_, err := r.collection.InsertOne(ctx, newConversationLogDocument(entry))
	if err != nil {
		return fmt.Errorf("failed to append conversation log: %w", err)
	}
	return nil
}
