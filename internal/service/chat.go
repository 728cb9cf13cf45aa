package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/reservasi-bot/internal/dialogue"
	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/Rrens/reservasi-bot/internal/session"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Renderer rewords a literal reply line for the user
type Renderer interface {
	Render(ctx context.Context, history []domain.Turn, line string) (string, error)
}

// ChatService runs one dialogue turn per incoming message
type ChatService struct {
	sessions session.Store
	engine   dialogue.Engine
	renderer Renderer
	logs     domain.ConversationLogRepository
	clock    clockwork.Clock
}

// NewChatService creates a new chat service. renderer and logs may be nil.
func NewChatService(
	sessions session.Store,
	engine dialogue.Engine,
	renderer Renderer,
	logs domain.ConversationLogRepository,
	clock clockwork.Clock,
) *ChatService {
	return &ChatService{
		sessions: sessions,
		engine:   engine,
		renderer: renderer,
		logs:     logs,
		clock:    clock,
	}
}

// HandleMessage advances the session identified by sessionID with message.
// Turns for the same session are serialised; when an error is returned the
// stored session is unchanged.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, message string) (*domain.ChatResult, error) {
	unlock, err := s.sessions.Lock(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer unlock()

	sess, created, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if created {
		log.Debug().Str("session_id", sessionID).Msg("Session created")
	}

	next, reply, err := s.engine.Turn(ctx, sess, message)
	if err != nil {
		return nil, err
	}

	text := s.render(ctx, next, reply)

	next.History = append(next.History,
		domain.Turn{Role: domain.TurnUser, Content: message},
		domain.Turn{Role: domain.TurnAssistant, Content: text},
	)

	if err := s.sessions.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if reply.Intent == dialogue.IntentConfirmed {
		log.Info().
			Str("session_id", sessionID).
			Str("reservation_code", next.ReservationCode).
			Msg("Reservation confirmed")
	}

	s.appendLog(ctx, sessionID, message, text)

	return &domain.ChatResult{
		SessionID:       sessionID,
		Reply:           text,
		Step:            next.Step,
		IsComplete:      next.IsComplete,
		ReservationCode: next.ReservationCode,
	}, nil
}

// render returns the text shown to the user, falling back to the literal
// line whenever rewording is unavailable or fails
func (s *ChatService) render(ctx context.Context, sess *domain.Session, reply dialogue.Reply) string {
	if reply.Generated || s.renderer == nil {
		return reply.Text
	}

	text, err := s.renderer.Render(ctx, sess.History, reply.Text)
	if err != nil {
		log.Warn().Err(err).
			Str("session_id", sess.ID).
			Str("intent", string(reply.Intent)).
			Msg("Reply rendering failed, using literal line")
		return reply.Text
	}
	return text
}

func (s *ChatService) appendLog(ctx context.Context, sessionID, message, reply string) {
	if s.logs == nil {
		return
	}

	// outlives request cancellation
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	entry := &domain.ConversationLog{
		ID:          uuid.New(),
		SessionID:   sessionID,
		UserMessage: message,
		BotResponse: reply,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to append conversation log")
	}
}
