package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"rezum-backend/internal/models"
)

// GeminiModel is the generative model every chat request targets.
const GeminiModel = "gemini-1.5-flash"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Fixed generation parameters; not caller-configurable.
const (
	geminiTemperature     = 0.7
	geminiTopK            = 40
	geminiTopP            = 0.95
	geminiMaxOutputTokens = 2048
)

// httpDoer lets tests substitute the outbound transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type GeminiService struct {
	apiKey      string
	baseURL     string
	client      httpDoer
	sleep       func(ctx context.Context, d time.Duration) error
	maxAttempts int
	baseDelay   time.Duration
}

func NewGeminiService(apiKey string, maxAttempts int, baseDelay time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:      apiKey,
		baseURL:     defaultGeminiBaseURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		sleep:       sleepContext,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

// Gemini REST wire types.

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SendChat relays one message (plus optional history and document context) to
// Gemini and returns the generated reply. Rate-limit and transport failures
// are retried with exponential backoff before a typed error is surfaced.
func (s *GeminiService) SendChat(ctx context.Context, message string, history []models.ConversationTurn, documentContext string) (string, error) {
	if s.apiKey == "" {
		return "", &ConfigError{Message: "Gemini API key not configured. Please set GEMINI_API_KEY in .env file"}
	}
	if strings.TrimSpace(message) == "" {
		return "", &ValidationError{Fields: map[string]string{"message": "Message is required"}}
	}

	payload := buildChatPayload(message, history, documentContext)
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, GeminiModel, s.apiKey)

	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		log.Printf("Calling Gemini API (attempt %d/%d) with message: %s", attempt+1, s.maxAttempts, truncate(message, 100))

		reply, retryable, err := s.doAttempt(ctx, url, body)
		if err == nil {
			log.Printf("Gemini API call succeeded on attempt %d", attempt+1)
			return reply, nil
		}
		if !retryable {
			log.Printf("Gemini API call failed: %v", err)
			return "", err
		}

		lastErr = err
		if attempt < s.maxAttempts-1 {
			delay := s.baseDelay * time.Duration(1<<uint(attempt))
			log.Printf("WARNING: Gemini API call failed (%v), retrying in %s", err, delay)
			if err := s.sleep(ctx, delay); err != nil {
				return "", &TransportError{Err: err}
			}
		}
	}

	log.Printf("Gemini API call failed after %d attempts: %v", s.maxAttempts, lastErr)
	return "", lastErr
}

// doAttempt performs a single request. retryable reports whether the error is
// worth another attempt (429 or transport failure).
func (s *GeminiService) doAttempt(ctx context.Context, url string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, &TransportError{Err: ctx.Err()}
		}
		return "", true, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", true, &RateLimitError{
			Message: "Gemini API rate limit exceeded. Please wait a moment and try again, or check your API quota.",
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", false, &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", false, &MalformedResponseError{}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", false, &MalformedResponseError{}
	}

	return parsed.Candidates[0].Content.Parts[0].Text, false, nil
}

// buildChatPayload assembles the wire payload: filtered history followed by
// the current user turn. Order of retained turns is preserved.
func buildChatPayload(message string, history []models.ConversationTurn, documentContext string) geminiRequest {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		if turn.Role != "user" && turn.Role != "model" {
			continue
		}
		contents = append(contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}

	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: buildUserTurnText(message, documentContext)}},
	})

	return geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     geminiTemperature,
			TopK:            geminiTopK,
			TopP:            geminiTopP,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}
}

// buildUserTurnText wraps the message with the uploaded document content when
// present. The context is embedded verbatim, never truncated or summarized.
func buildUserTurnText(message, documentContext string) string {
	if documentContext == "" {
		return message
	}
	return fmt.Sprintf(`The user has uploaded one or more documents. Document content:

%s

Answer the question below based on the document content above.

Question: %s`, documentContext, message)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
