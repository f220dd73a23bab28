package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// maxPooledBuffer keeps one oversized status payload from pinning memory
const maxPooledBuffer = 64 << 10

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			buf.Reset()
			bufferPool.Put(buf)
		}
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgLockBusyError      = "A sync is already running"
	ErrMsgUnavailableError   = "Remote catalog is unavailable. Please try again later."
	ErrMsgPersistenceError   = "Storage error occurred. Please try again."
	ErrMsgInvalidRecordError = "The remote catalog returned a record that cannot be stored"
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message safe to show to the caller
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrLockBusy):
		return http.StatusConflict, ErrMsgLockBusyError
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusBadGateway, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrInvalidRecord):
		return http.StatusBadGateway, ErrMsgInvalidRecordError
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, ErrMsgPersistenceError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
