package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/reservasi-bot/internal/dialogue"
	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/Rrens/reservasi-bot/internal/session"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

type chatFixture struct {
	svc   *ChatService
	store *session.MemoryStore
	repo  *MockReservationRepository
	clock *clockwork.FakeClock
}

func newChatFixture(renderer Renderer, logs domain.ConversationLogRepository) *chatFixture {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 10, 10, 0, 0, 0, wib))
	repo := new(MockReservationRepository)
	store := session.NewMemoryStore(clock)
	committer := dialogue.NewCommitter(repo, dialogue.NewCodeGenerator(clock), 5*time.Minute)
	engine := dialogue.NewGuidedEngine(committer, clock, wib, dialogue.Lines{Restaurant: "Restoran WAJIB"})

	return &chatFixture{
		svc:   NewChatService(store, engine, renderer, logs, clock),
		store: store,
		repo:  repo,
		clock: clock,
	}
}

func (f *chatFixture) send(t *testing.T, sessionID string, messages ...string) *domain.ChatResult {
	t.Helper()
	var result *domain.ChatResult
	for _, m := range messages {
		var err error
		result, err = f.svc.HandleMessage(context.Background(), sessionID, m)
		require.NoError(t, err, "message %q", m)
	}
	return result
}

var fullConversation = []string{"Halo", "15 Maret 2026", "19:00", "4 orang", "Budi Santoso", "081234567890"}

func TestChatService_CompleteReservation(t *testing.T) {
	f := newChatFixture(nil, nil)

	var saved *domain.Reservation
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Reservation) }).
		Return(nil).Once()

	result := f.send(t, "s1", fullConversation...)
	assert.Equal(t, domain.StepSummary, result.Step)
	assert.False(t, result.IsComplete)

	result = f.send(t, "s1", "ya")
	assert.True(t, result.IsComplete)
	assert.Regexp(t, dialogue.CodePattern, result.ReservationCode)
	assert.Contains(t, result.Reply, result.ReservationCode)

	require.NotNil(t, saved)
	assert.Equal(t, 4, saved.GuestCount)
	assert.Equal(t, "081234567890", saved.Phone)
	assert.Equal(t, domain.StatusConfirmed, saved.Status)

	sess, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, sess.History, 14)
	assert.Equal(t, domain.TurnUser, sess.History[0].Role)
	assert.Equal(t, "Halo", sess.History[0].Content)

	f.repo.AssertExpectations(t)
}

func TestChatService_ConfirmationAfterCompletion(t *testing.T) {
	f := newChatFixture(nil, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	first := f.send(t, "s1", append(fullConversation, "ya")...)
	second := f.send(t, "s1", "ya")

	assert.True(t, second.IsComplete)
	assert.Equal(t, first.ReservationCode, second.ReservationCode)
	f.repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestChatService_CompletedSessionExpires(t *testing.T) {
	f := newChatFixture(nil, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	f.send(t, "s1", append(fullConversation, "ya")...)

	f.clock.Advance(4 * time.Minute)
	result := f.send(t, "s1", "halo lagi")
	assert.True(t, result.IsComplete)

	f.clock.Advance(2 * time.Minute)
	result = f.send(t, "s1", "halo lagi")
	assert.False(t, result.IsComplete)
	assert.Empty(t, result.ReservationCode)
	assert.Equal(t, domain.StepValidateDate, result.Step)
}

func TestChatService_SinkFailureLeavesSession(t *testing.T) {
	f := newChatFixture(nil, nil)
	f.send(t, "s1", fullConversation...)

	before, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)

	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err = f.svc.HandleMessage(context.Background(), "s1", "ya")
	assert.ErrorIs(t, err, domain.ErrReservationNotSaved)

	after, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, before.Step, after.Step)
	assert.Equal(t, before.Collected, after.Collected)
	assert.Len(t, after.History, len(before.History))
	assert.False(t, after.IsComplete)

	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	result := f.send(t, "s1", "ya")
	assert.True(t, result.IsComplete)
}

func TestChatService_Rejection(t *testing.T) {
	f := newChatFixture(nil, nil)

	f.send(t, "s1", fullConversation...)
	result := f.send(t, "s1", "tidak")

	assert.Equal(t, domain.StepAskDate, result.Step)
	assert.False(t, result.IsComplete)

	sess, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, sess.Collected.IsEmpty())

	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChatService_Rendering(t *testing.T) {
	t.Run("uses rendered text", func(t *testing.T) {
		renderer := new(MockRenderer)
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return("Halo! Kapan mau datang?", nil).Once()

		f := newChatFixture(renderer, nil)
		result := f.send(t, "s1", "Halo")
		assert.Equal(t, "Halo! Kapan mau datang?", result.Reply)
	})

	t.Run("falls back to literal line", func(t *testing.T) {
		renderer := new(MockRenderer)
		renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()

		f := newChatFixture(renderer, nil)
		result := f.send(t, "s1", "Halo")
		assert.Contains(t, result.Reply, "Selamat datang di Restoran WAJIB")
	})
}

func TestChatService_ConversationLog(t *testing.T) {
	logs := new(MockConversationLogRepository)
	logs.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.ConversationLog) bool {
		return e.SessionID == "s1" && e.UserMessage == "Halo" && e.BotResponse != ""
	})).Return(errors.New("log sink down")).Once()

	f := newChatFixture(nil, logs)

	// a failing log sink does not fail the turn
	result := f.send(t, "s1", "Halo")
	assert.Equal(t, domain.StepValidateDate, result.Step)

	logs.AssertExpectations(t)
}

func TestChatService_ConcurrentSameSession(t *testing.T) {
	f := newChatFixture(nil, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	f.send(t, "s1", fullConversation...)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.HandleMessage(context.Background(), "s1", "ya"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	f.repo.AssertNumberOfCalls(t, "Create", 1)

	sess, err := f.store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, sess.IsComplete)
	assert.Len(t, sess.History, len(fullConversation)*2+20)
}

func TestChatService_IndependentSessions(t *testing.T) {
	f := newChatFixture(nil, nil)

	f.send(t, "a", "Halo", "besok")
	f.send(t, "b", "Halo")

	a, err := f.store.Get(context.Background(), "a")
	require.NoError(t, err)
	b, err := f.store.Get(context.Background(), "b")
	require.NoError(t, err)

	assert.Equal(t, domain.StepAskTime, a.Step)
	assert.Equal(t, domain.StepValidateDate, b.Step)
	assert.Empty(t, b.Collected.Date)
}
