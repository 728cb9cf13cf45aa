package domain

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=128"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// ChatResponse is returned for every handled chat turn
type ChatResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	SessionID       string `json:"sessionId,omitempty"`
	IsComplete      bool   `json:"isComplete"`
	ReservationCode string `json:"reservationCode,omitempty"`
}

// ChatResult is the outcome of one turn as seen by the service layer
type ChatResult struct {
	SessionID       string
	Reply           string
	Step            Step
	IsComplete      bool
	ReservationCode string
}
