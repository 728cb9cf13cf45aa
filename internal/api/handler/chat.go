package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Rrens/reservasi-bot/internal/api/response"
	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

const maxChatBody = 64 << 10

// ChatProcessor runs one chat turn
type ChatProcessor interface {
	HandleMessage(ctx context.Context, sessionID, message string) (*domain.ChatResult, error)
}

type ChatHandler struct {
	chat ChatProcessor
}

func NewChatHandler(chat ChatProcessor) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Send handles POST /api/chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		response.BadRequest(w, msgInvalidBody)
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, validationMessage(err))
		return
	}

	result, err := h.chat.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		log.Error().Err(err).
			Str("session_id", req.SessionID).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Chat turn failed")

		if errors.Is(err, domain.ErrReservationNotSaved) {
			response.Write(w, http.StatusInternalServerError, domain.ChatResponse{
				Success:    false,
				Message:    msgReservationNotSaved,
				SessionID:  req.SessionID,
				IsComplete: false,
			})
			return
		}

		response.InternalError(w, msgGenericFailure)
		return
	}

	response.Write(w, http.StatusOK, domain.ChatResponse{
		Success:         true,
		Message:         result.Reply,
		SessionID:       result.SessionID,
		IsComplete:      result.IsComplete,
		ReservationCode: result.ReservationCode,
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "max" {
				return msgChatFieldsTooLong
			}
		}
	}
	return msgChatFieldsRequired
}
