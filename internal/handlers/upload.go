package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"rezum-backend/internal/models"
)

type pdfExtractor interface {
	ExtractText(data []byte, filename string) (string, error)
}

type UploadHandler struct {
	extractor      pdfExtractor
	maxUploadBytes int64
}

func NewUploadHandler(extractor pdfExtractor, maxUploadMB int) *UploadHandler {
	return &UploadHandler{
		extractor:      extractor,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// UploadPDF accepts a batch-shaped multipart form but exactly one PDF per
// request. The extracted text goes back to the client, which passes it as
// document_context on chat requests.
func (h *UploadHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart body or file too large", r))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"files": "A PDF file is required"}, r))
		return
	}
	if len(files) > 1 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"files": "Only one PDF per upload is supported"}, r))
		return
	}

	header := files[0]
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"files": "Only PDF files are supported"}, r))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read uploaded file", r))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to read uploaded file", r))
		return
	}

	text, err := h.extractor.ExtractText(data, header.Filename)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UploadPDFResponse{
		Filename:   header.Filename,
		Characters: len(text),
		Text:       text,
	})
}
