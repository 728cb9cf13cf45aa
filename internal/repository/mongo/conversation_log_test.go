package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func testEntry() *domain.ConversationLog {
	return &domain.ConversationLog{
		ID:          uuid.MustParse("7f1c2a52-3c1e-4d61-9d3a-1b2c3d4e5f60"),
		SessionID:   "s1",
		UserMessage: "Halo",
		BotResponse: "Selamat datang!",
		CreatedAt:   time.Date(2026, 1, 10, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600)),
	}
}

func TestConversationLogDocument(t *testing.T) {
	doc := newConversationLogDocument(testEntry())

	assert.Equal(t, "7f1c2a52-3c1e-4d61-9d3a-1b2c3d4e5f60", doc.ID)
	assert.Equal(t, time.UTC, doc.CreatedAt.Location())
	assert.True(t, doc.CreatedAt.Equal(time.Date(2026, 1, 10, 3, 0, 0, 0, time.UTC)))

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, "7f1c2a52-3c1e-4d61-9d3a-1b2c3d4e5f60", fields["_id"])
	assert.Equal(t, "s1", fields["session_id"])
	assert.Equal(t, "Halo", fields["user_message"])
	assert.Equal(t, "Selamat datang!", fields["bot_response"])
	assert.Contains(t, fields, "created_at")
}

// Runs against a real server: TEST_MONGO_URI=mongodb://localhost:27017 go test ./internal/repository/mongo
func TestConversationLogRepository_Server(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, config.MongoConfig{URI: uri, Database: "reservasi_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	repo := NewConversationLogRepository(client, "conversation_logs")
	require.NoError(t, repo.EnsureIndexes(ctx))

	entry := testEntry()
	entry.ID = uuid.New()
	require.NoError(t, repo.Append(ctx, entry))
	t.Cleanup(func() {
		_, _ = repo.collection.DeleteOne(context.Background(), bson.M{"_id": entry.ID.String()})
	})

	var stored conversationLogDocument
	require.NoError(t, repo.collection.FindOne(ctx, bson.M{"_id": entry.ID.String()}).Decode(&stored))
	assert.Equal(t, entry.SessionID, stored.SessionID)
	assert.Equal(t, entry.BotResponse, stored.BotResponse)

	// ids are unique
	assert.Error(t, repo.Append(ctx, entry))
}
