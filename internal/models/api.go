package models

// UploadPDFResponse is returned by the upload endpoint. Text is the extracted
// blob the client sends back as document_context on subsequent chat requests.
type UploadPDFResponse struct {
	Filename   string `json:"filename"`
	Characters int    `json:"characters"`
	Text       string `json:"text"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
