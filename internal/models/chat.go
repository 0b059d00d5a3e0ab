package models

// ConversationTurn is a single message in a conversation. The Gemini API only
// accepts the roles "user" and "model"; turns with any other role are dropped
// before the request goes upstream.
type ConversationTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message             string             `json:"message"`
	ConversationHistory []ConversationTurn `json:"conversation_history"`
	DocumentContext     string             `json:"document_context"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
}
