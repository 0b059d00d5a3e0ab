package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"rezum-backend/internal/models"
	"rezum-backend/internal/services"
)

type chatService interface {
	SendChat(ctx context.Context, message string, history []models.ConversationTurn, documentContext string) (string, error)
}

type ChatHandler struct {
	gemini chatService
}

func NewChatHandler(gemini chatService) *ChatHandler {
	return &ChatHandler{gemini: gemini}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	reply, err := h.gemini.SendChat(r.Context(), req.Message, req.ConversationHistory, req.DocumentContext)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply, Source: services.GeminiModel})
}
