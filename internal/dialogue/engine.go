// Package dialogue drives one reservation conversation turn at a time: it
// decides what the bot says next and when a reservation is written.
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/Rrens/reservasi-bot/internal/intake"
	"github.com/jonboulle/clockwork"
)

// Engine advances a session by one user utterance. The input session is
// never modified; the returned session is the state to persist. When an
// error is returned the caller must keep the previous state.
type Engine interface {
	Turn(ctx context.Context, sess *domain.Session, utterance string) (*domain.Session, Reply, error)
}

// GuidedEngine is the deterministic state machine
// ASK_DATE → VALIDATE_DATE → ASK_TIME → ASK_GUESTS → ASK_NAME → ASK_CONTACT → SUMMARY.
type GuidedEngine struct {
	committer *Committer
	clock     clockwork.Clock
	loc       *time.Location
	lines     Lines
}

// NewGuidedEngine creates the guided engine. Dates are interpreted in loc.
func NewGuidedEngine(committer *Committer, clock clockwork.Clock, loc *time.Location, lines Lines) *GuidedEngine {
	if loc == nil {
		loc = time.Local
	}
	return &GuidedEngine{
		committer: committer,
		clock:     clock,
		loc:       loc,
		lines:     lines,
	}
}

func (e *GuidedEngine) Turn(ctx context.Context, sess *domain.Session, utterance string) (*domain.Session, Reply, error) {
	next := sess.Clone()
	text := strings.TrimSpace(utterance)
	now := e.clock.Now().In(e.loc)

	if next.IsComplete {
		return next, e.literal(IntentAlreadyComplete, e.lines.AlreadyComplete(next.ReservationCode), next.ReservationCode), nil
	}

	switch next.Step {
	case domain.StepAskDate:
		next.Step = domain.StepValidateDate
		if _, ok := intake.ParseCalendarDate(text, now); ok {
			return e.validateDate(next, text, now)
		}
		return next, e.literal(IntentWelcome, e.lines.Welcome(), ""), nil

	case domain.StepValidateDate:
		return e.validateDate(next, text, now)

	case domain.StepAskTime:
		clock, ok := intake.ParseTime(text)
		if !ok {
			return next, e.literal(IntentInvalidTime, e.lines.InvalidTime(), ""), nil
		}
		next.Collected.Time = clock
		next.Step = domain.StepAskGuests
		return next, e.literal(IntentAskGuests, e.lines.AskGuests(clock), ""), nil

	case domain.StepAskGuests:
		n, ok := intake.ParseGuestCount(text)
		if !ok {
			return next, e.literal(IntentInvalidGuests, e.lines.InvalidGuests(), ""), nil
		}
		next.Collected.GuestCount = n
		next.Step = domain.StepAskName
		return next, e.literal(IntentAskName, e.lines.AskName(n), ""), nil

	case domain.StepAskName:
		if text == "" {
			return next, e.literal(IntentInvalidName, e.lines.InvalidName(), ""), nil
		}
		name := truncateRunes(text, domain.CustomerNameMaxLength)
		next.Collected.CustomerName = name
		next.Step = domain.StepAskContact
		return next, e.literal(IntentAskContact, e.lines.AskContact(name), ""), nil

	case domain.StepAskContact:
		phone, ok := intake.NormalizePhone(text)
		if !ok {
			return next, e.literal(IntentInvalidPhone, e.lines.InvalidPhone(), ""), nil
		}
		next.Collected.Phone = phone
		next.Step = domain.StepSummary
		return next, e.literal(IntentSummary, e.lines.Summary(next.Collected), ""), nil

	case domain.StepSummary:
		if !intake.IsAffirmative(text) {
			next.Step = domain.StepAskDate
			next.Collected = domain.Collected{}
			return next, e.literal(IntentRestart, e.lines.Restart(), ""), nil
		}

		reservation, err := e.committer.Commit(ctx, next, next.Collected, now)
		if err != nil {
			return sess, Reply{}, err
		}
		code := reservation.ReservationCode
		return next, e.literal(IntentConfirmed, e.lines.Confirmed(code), code), nil
	}

	return sess, Reply{}, fmt.Errorf("unknown dialogue step %q", next.Step)
}

func (e *GuidedEngine) validateDate(next *domain.Session, text string, now time.Time) (*domain.Session, Reply, error) {
	date, ok := intake.ParseDate(text, now)
	if !ok {
		return next, e.literal(IntentInvalidDate, e.lines.InvalidDate(), ""), nil
	}
	next.Collected.Date = date.Format("2006-01-02")
	next.Step = domain.StepAskTime
	return next, e.literal(IntentAskTime, e.lines.AskTime(next.Collected.Date), ""), nil
}

func (e *GuidedEngine) literal(intent Intent, text, code string) Reply {
	return Reply{Intent: intent, Text: text, ReservationCode: code}
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit]))
}
