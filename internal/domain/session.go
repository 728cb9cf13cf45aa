package domain

import "time"

// Step is the position of a session in the intake sequence
type Step string

const (
	StepAskDate      Step = "ASK_DATE"
	StepValidateDate Step = "VALIDATE_DATE"
	StepAskTime      Step = "ASK_TIME"
	StepAskGuests    Step = "ASK_GUESTS"
	StepAskName      Step = "ASK_NAME"
	StepAskContact   Step = "ASK_CONTACT"
	StepSummary      Step = "SUMMARY"
)

// Steps lists the intake sequence in order
var Steps = []Step{
	StepAskDate,
	StepValidateDate,
	StepAskTime,
	StepAskGuests,
	StepAskName,
	StepAskContact,
	StepSummary,
}

// Index returns the position of the step in Steps, or -1 for an unknown step
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// TurnRole marks who produced a history entry
type TurnRole string

const (
	TurnUser      TurnRole = "user"
	TurnAssistant TurnRole = "assistant"
)

// Turn is one history entry of a conversation
type Turn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}

// Collected is the partial reservation accumulated across steps.
// Zero values mean the field has not been collected yet.
type Collected struct {
	Date         string `json:"date,omitempty"` // YYYY-MM-DD
	Time         string `json:"time,omitempty"` // HH:MM
	GuestCount   int    `json:"guest_count,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// IsEmpty reports whether no field has been collected
func (c Collected) IsEmpty() bool {
	return c == Collected{}
}

// Session is the dialogue state of one conversation
type Session struct {
	ID              string    `json:"session_id"`
	Step            Step      `json:"step"`
	Collected       Collected `json:"collected"`
	IsComplete      bool      `json:"is_complete"`
	ReservationCode string    `json:"reservation_code,omitempty"`
	History         []Turn    `json:"history,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CompletedAt     time.Time `json:"completed_at,omitempty"`
	// ExpiresAt is zero while the session has no scheduled removal
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// NewSession returns a session positioned at the first step
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      StepAskDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.History != nil {
		c.History = make([]Turn, len(s.History))
		copy(c.History, s.History)
	}
	return &c
}

// UserUtterances returns the user side of the history in order
func (s *Session) UserUtterances() []string {
	var out []string
	for _, t := range s.History {
		if t.Role == TurnUser {
			out = append(out, t.Content)
		}
	}
	return out
}

// LastAssistantTurn returns the most recent assistant reply, if any
func (s *Session) LastAssistantTurn() (string, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == TurnAssistant {
			return s.History[i].Content, true
		}
	}
	return "", false
}
