package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/Rrens/reservasi-bot/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Provider struct {
	apiKey string
	model  string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) Generate(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gemini request has no messages")
	}

	if model == "" {
		model = p.DefaultModel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	temperature := req.Temperature
	generativeModel.Temperature = &temperature
	if req.MaxTokens > 0 {
		maxTokens := int32(req.MaxTokens)
		generativeModel.MaxOutputTokens = &maxTokens
	}
	if req.System != "" {
		generativeModel.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	chat := generativeModel.StartChat()
	var last llm.Message
	chat.History, last = splitHistory(req.Messages)

	start := time.Now()
	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output.WriteString(string(text))
		}
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &llm.Response{
		Content:    output.String(),
		Model:      model,
		TokensUsed: tokensUsed,
		LatencyMs:  latency,
	}, nil
}

// splitHistory turns all but the last message into chat history; the last
// one is what gets sent
func splitHistory(messages []llm.Message) ([]*genai.Content, llm.Message) {
	last := messages[len(messages)-1]
	history := make([]*genai.Content, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return history, last
}
