package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPhraser_Generate(t *testing.T) {
	provider := &MockProvider{name: "mock", configured: true}
	phraser := NewPhraser(provider, PhraserOptions{Model: "m1"})

	history := []domain.Turn{
		{Role: domain.TurnUser, Content: "Halo"},
		{Role: domain.TurnAssistant, Content: "Selamat datang!"},
		{Role: domain.TurnUser, Content: "besok"},
	}

	provider.On("Generate", mock.Anything, mock.MatchedBy(func(req Request) bool {
		return req.System == "sys" &&
			len(req.Messages) == 3 &&
			req.Messages[1].Role == RoleAssistant &&
			req.Messages[2].Content == "besok" &&
			req.Temperature == 0.7 &&
			req.MaxTokens == 500
	}), "m1").Return(&Response{Content: "```\nJam berapa?\n```"}, nil).Once()

	text, err := phraser.Generate(context.Background(), "sys", history)
	require.NoError(t, err)
	assert.Equal(t, "Jam berapa?", text)

	provider.AssertExpectations(t)
}

func TestPhraser_GenerateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("provider error", func(t *testing.T) {
		provider := &MockProvider{name: "mock", configured: true}
		provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := NewPhraser(provider, PhraserOptions{}).Generate(ctx, "sys", nil)
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("empty content", func(t *testing.T) {
		provider := &MockProvider{name: "mock", configured: true}
		provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&Response{Content: "  "}, nil)

		_, err := NewPhraser(provider, PhraserOptions{}).Generate(ctx, "sys", nil)
		assert.ErrorContains(t, err, "empty response")
	})
}

func TestPhraser_Render(t *testing.T) {
	ctx := context.Background()
	line := "Kode Reservasi Anda: RES12345678901"

	t.Run("keeps facts", func(t *testing.T) {
		provider := &MockProvider{name: "mock", configured: true}
		provider.On("Generate", mock.Anything, mock.MatchedBy(func(req Request) bool {
			last := req.Messages[len(req.Messages)-1]
			return last.Role == RoleUser && last.Content == BuildRephraseMessage(line)
		}), "").Return(&Response{Content: "Hore! Kode Anda RES12345678901."}, nil)

		text, err := NewPhraser(provider, PhraserOptions{Restaurant: "Restoran WAJIB"}).Render(ctx, nil, line)
		require.NoError(t, err)
		assert.Equal(t, "Hore! Kode Anda RES12345678901.", text)
	})

	t.Run("drops code", func(t *testing.T) {
		provider := &MockProvider{name: "mock", configured: true}
		provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(&Response{Content: "Reservasi berhasil!"}, nil)

		_, err := NewPhraser(provider, PhraserOptions{}).Render(ctx, nil, line)
		assert.ErrorIs(t, err, ErrUnusableRewrite)
	})
}

func TestRouter(t *testing.T) {
	router := NewRouter("openai")
	router.RegisterProvider(&MockProvider{name: "openai", configured: true})
	router.RegisterProvider(&MockProvider{name: "gemini", configured: false})

	p, err := router.GetProvider("")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = router.GetProvider("gemini")
	assert.ErrorContains(t, err, "not configured")

	_, err = router.GetProvider("anthropic")
	assert.ErrorContains(t, err, "not found")

	assert.Equal(t, []string{"openai"}, router.ListProviders())

	statuses := router.Status()
	require.Len(t, statuses, 2)
	assert.Equal(t, ProviderStatus{Name: "gemini", Model: "test-model"}, statuses[0])
	assert.Equal(t, ProviderStatus{Name: "openai", Model: "test-model", Default: true, Configured: true}, statuses[1])
}
