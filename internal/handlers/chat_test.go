package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rezum-backend/internal/models"
	"rezum-backend/internal/services"
)

// ─── Chat Handler Tests ───

type stubChatService struct {
	reply string
	err   error

	calls       int
	gotMessage  string
	gotHistory  []models.ConversationTurn
	gotDocument string
}

func (s *stubChatService) SendChat(ctx context.Context, message string, history []models.ConversationTurn, documentContext string) (string, error) {
	s.calls++
	s.gotMessage = message
	s.gotHistory = history
	s.gotDocument = documentContext
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func postChat(t *testing.T, h *ChatHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.Chat(rr, req)
	return rr
}

func TestChatHandler_Success(t *testing.T) {
	stub := &stubChatService{reply: "Hello there"}
	h := NewChatHandler(stub)

	rr := postChat(t, h, models.ChatRequest{
		Message: "hi",
		ConversationHistory: []models.ConversationTurn{
			{Role: "user", Text: "earlier question"},
			{Role: "model", Text: "earlier answer"},
		},
		DocumentContext: "--- Page 1 ---\nsome text",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Reply != "Hello there" {
		t.Errorf("Expected reply 'Hello there', got %q", resp.Reply)
	}
	if resp.Source != services.GeminiModel {
		t.Errorf("Expected source %q, got %q", services.GeminiModel, resp.Source)
	}

	if stub.calls != 1 {
		t.Errorf("Expected 1 service call, got %d", stub.calls)
	}
	if stub.gotMessage != "hi" || len(stub.gotHistory) != 2 || stub.gotDocument == "" {
		t.Errorf("Handler did not forward request fields: %q %v %q", stub.gotMessage, stub.gotHistory, stub.gotDocument)
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	stub := &stubChatService{reply: "unused"}
	h := NewChatHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.Chat(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}
	if stub.calls != 0 {
		t.Errorf("Expected no service call for invalid body, got %d", stub.calls)
	}
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"message": "Message is required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing config", &services.ConfigError{Message: "Gemini API key not configured"}, http.StatusInternalServerError, "CONFIG_ERROR"},
		{"rate limited", &services.RateLimitError{Message: "Gemini API rate limit exceeded"}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"upstream", &services.UpstreamError{StatusCode: 503, Body: "unavailable"}, http.StatusInternalServerError, "UPSTREAM_ERROR"},
		{"transport", &services.TransportError{}, http.StatusInternalServerError, "UPSTREAM_ERROR"},
		{"malformed response", &services.MalformedResponseError{}, http.StatusInternalServerError, "UPSTREAM_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChatHandler(&stubChatService{err: tc.err})

			rr := postChat(t, h, models.ChatRequest{Message: "hi"})
			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected error code %q, got %q", tc.wantCode, resp.Error.Code)
			}
		})
	}
}
