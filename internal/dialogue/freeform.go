package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/Rrens/reservasi-bot/internal/intake"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Defaults used when the extractor cannot recover a field in free-form mode
const (
	DefaultCustomerName = "Customer"
	DefaultTime         = "18:00"
)

var confirmationMarkers = []string{"konfirmasi", "benar"}

// Generator produces the next assistant message from a system instruction
// and the conversation so far, the last turn being the user's
type Generator interface {
	Generate(ctx context.Context, system string, history []domain.Turn) (string, error)
}

// FreeformEngine lets a language model lead the conversation and only
// commits when the user agrees to a confirmation question.
type FreeformEngine struct {
	generator Generator
	system    string
	committer *Committer
	clock     clockwork.Clock
	loc       *time.Location
	lines     Lines
}

// NewFreeformEngine creates the free-form engine. system is the instruction
// prompt sent with every turn.
func NewFreeformEngine(generator Generator, system string, committer *Committer, clock clockwork.Clock, loc *time.Location, lines Lines) *FreeformEngine {
	if loc == nil {
		loc = time.Local
	}
	return &FreeformEngine{
		generator: generator,
		system:    system,
		committer: committer,
		clock:     clock,
		loc:       loc,
		lines:     lines,
	}
}

func (e *FreeformEngine) Turn(ctx context.Context, sess *domain.Session, utterance string) (*domain.Session, Reply, error) {
	next := sess.Clone()
	now := e.clock.Now().In(e.loc)

	if next.IsComplete {
		code := next.ReservationCode
		return next, Reply{Intent: IntentAlreadyComplete, Text: e.lines.AlreadyComplete(code), ReservationCode: code}, nil
	}

	history := make([]domain.Turn, 0, len(sess.History)+1)
	history = append(history, sess.History...)
	history = append(history, domain.Turn{Role: domain.TurnUser, Content: utterance})

	if e.confirming(sess, utterance) {
		fields, ok := e.recover(append(sess.UserUtterances(), utterance), now)
		if ok {
			reservation, err := e.committer.Commit(ctx, next, fields, now)
			if err != nil {
				return sess, Reply{}, err
			}
			code := reservation.ReservationCode

			text, err := e.generator.Generate(ctx, e.system, history)
			if err != nil {
				log.Warn().Err(err).Str("session_id", sess.ID).Msg("Confirmation reply generation failed, using literal line")
				text = e.lines.Confirmed(code)
			} else {
				text = strings.TrimSpace(text) + e.lines.CodeFooter(code)
			}
			return next, Reply{Intent: IntentConfirmed, Text: text, Generated: true, ReservationCode: code}, nil
		}
		log.Debug().Str("session_id", sess.ID).Msg("Confirmation without recoverable phone and guest count")
	}

	text, err := e.generator.Generate(ctx, e.system, history)
	if err != nil {
		return sess, Reply{}, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return next, Reply{Intent: IntentFreeform, Text: strings.TrimSpace(text), Generated: true}, nil
}

func (e *FreeformEngine) confirming(sess *domain.Session, utterance string) bool {
	last, ok := sess.LastAssistantTurn()
	if !ok || !intake.IsAffirmative(utterance) {
		return false
	}
	last = strings.ToLower(last)
	for _, marker := range confirmationMarkers {
		if strings.Contains(last, marker) {
			return true
		}
	}
	return false
}

// recover rebuilds the reservation from the user's utterances. Phone and
// guest count are required; the rest falls back to defaults.
func (e *FreeformEngine) recover(utterances []string, now time.Time) (domain.Collected, bool) {
	ex := intake.Extract(utterances, now)

	phone, ok := intake.NormalizePhone(ex.Phone)
	if !ok || ex.GuestCount < intake.MinGuests || ex.GuestCount > intake.MaxGuests {
		return domain.Collected{}, false
	}

	fields := domain.Collected{
		Date:         ex.Date,
		Time:         ex.Time,
		GuestCount:   ex.GuestCount,
		CustomerName: ex.CustomerName,
		Phone:        phone,
	}
	if fields.Date == "" {
		fields.Date = now.AddDate(0, 0, 1).Format("2006-01-02")
	}
	if fields.Time == "" {
		fields.Time = DefaultTime
	}
	if fields.CustomerName == "" {
		fields.CustomerName = DefaultCustomerName
	}
	return fields, true
}
