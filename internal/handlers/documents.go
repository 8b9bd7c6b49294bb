package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/BerylCAtieno/pdf-signer/internal/middleware"
	"github.com/BerylCAtieno/pdf-signer/internal/models"
	"github.com/BerylCAtieno/pdf-signer/internal/services"
	"github.com/BerylCAtieno/pdf-signer/internal/utils"
)

const (
	FormFieldFile         = "file"
	FormFieldSignAllPages = "signAllPages"

	SignatureIDHeader = "X-Signature-Id"

	msgNoFile     = "No PDF file provided"
	msgNotPDF     = "File must be a PDF"
	msgSignFailed = "Failed to sign PDF. Please try again."
)

type SignHandler struct {
	service            services.SigningService
	logger             *utils.Logger
	multipartMaxMemory int64
}

// NewSignHandler builds the sign endpoint. multipartMaxMemory bounds how much
// of the form is buffered in memory; it is not an upload size limit.
func NewSignHandler(service services.SigningService, logger *utils.Logger, multipartMaxMemory int64) *SignHandler {
	return &SignHandler{
		service:            service,
		logger:             logger,
		multipartMaxMemory: multipartMaxMemory,
	}
}

func (h *SignHandler) SignDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.multipartMaxMemory); err != nil {
		// A urlencoded form parses fine but can never carry a file.
		if errors.Is(err, http.ErrNotMultipart) && isURLEncoded(r) {
			h.respondError(w, r, utils.NewBadRequestError(msgNoFile))
			return
		}
		h.respondError(w, r, utils.NewInternalError(msgSignFailed, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(FormFieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			h.respondError(w, r, utils.NewBadRequestError(msgNoFile))
			return
		}
		h.respondError(w, r, utils.NewInternalError(msgSignFailed, err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != models.ContentTypePDF {
		h.logger.InfoContext(r.Context(), "Rejected non-PDF upload",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"filename", header.Filename,
			"content_type", contentType)
		h.respondError(w, r, utils.NewBadRequestError(msgNotPDF))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(w, r, utils.NewInternalError(msgSignFailed, err))
		return
	}

	req := &models.SignRequest{
		File:         data,
		Filename:     header.Filename,
		ContentType:  contentType,
		SignAllPages: r.FormValue(FormFieldSignAllPages) == "true",
	}

	signed, err := h.service.Sign(r.Context(), req)
	if err != nil {
		h.respondError(w, r, utils.NewInternalError(msgSignFailed, err))
		return
	}

	w.Header().Set("Content-Type", models.ContentTypePDF)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("Content-Length", strconv.Itoa(len(signed.Data)))
	w.Header().Set(SignatureIDHeader, signed.SignatureID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(signed.Data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to write signed document", "error", err)
	}
}

func isURLEncoded(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthResponse{Status: "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func (h *SignHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var message string

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
		message = appErr.Message
	} else {
		status = http.StatusInternalServerError
		message = msgSignFailed
	}

	h.logger.ErrorContext(r.Context(), "Request error",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"status", status,
		"error", err)

	if err := respondJSON(w, status, models.ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}
