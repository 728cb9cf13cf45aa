package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
)

// ErrUnusableRewrite is returned when a rephrased line lost a fact
var ErrUnusableRewrite = errors.New("rewrite dropped facts from the original line")

// PhraserOptions tunes generation
type PhraserOptions struct {
	Model       string
	Restaurant  string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Phraser turns reply directives into user-facing text with an LLM
type Phraser struct {
	provider Provider
	opts     PhraserOptions
}

// NewPhraser creates a phraser backed by provider
func NewPhraser(provider Provider, opts PhraserOptions) *Phraser {
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 500
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Phraser{provider: provider, opts: opts}
}

// Generate produces the next assistant message for the conversation
func (p *Phraser) Generate(ctx context.Context, system string, history []domain.Turn) (string, error) {
	resp, err := p.complete(ctx, Request{
		System:      system,
		Messages:    toMessages(history),
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return CleanReply(resp.Content), nil
}

// Render rewords a literal line. The rewrite is rejected when it drops any
// of the line's dates, times, counts or codes.
func (p *Phraser) Render(ctx context.Context, history []domain.Turn, line string) (string, error) {
	messages := toMessages(history)
	messages = append(messages, Message{Role: RoleUser, Content: BuildRephraseMessage(line)})

	resp, err := p.complete(ctx, Request{
		System:      BuildRephrasePrompt(p.opts.Restaurant),
		Messages:    messages,
		Temperature: p.opts.Temperature,
		MaxTokens:   p.opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	text := CleanReply(resp.Content)
	if missing := MissingFacts(line, text); len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnusableRewrite, strings.Join(missing, ", "))
	}
	return text, nil
}

func (p *Phraser) complete(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	resp, err := p.provider.Generate(ctx, req, p.opts.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to generate with %s: %w", p.provider.Name(), err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, fmt.Errorf("empty response from %s", p.provider.Name())
	}
	return resp, nil
}

func toMessages(history []domain.Turn) []Message {
	messages := make([]Message, 0, len(history)+1)
	for _, t := range history {
		role := RoleUser
		if t.Role == domain.TurnAssistant {
			role = RoleAssistant
		}
		messages = append(messages, Message{Role: role, Content: t.Content})
	}
	return messages
}
