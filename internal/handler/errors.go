package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/console"
	"adminconsole/internal/listing"
	"adminconsole/internal/logger"
	"adminconsole/internal/session"
	"adminconsole/internal/storage"
)

// statusClientClosed is reported when the operator navigated away mid-request.
const statusClientClosed = 499

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormErrorResponse is returned by modal submits; FormError is shown inline.
type FormErrorResponse struct {
	Error     string   `json:"error"`
	FormError string   `json:"formError"`
	Fields    []string `json:"fields,omitempty"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data any, statusCode int) {
	writeJSON(w, data, statusCode)
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Zlog.Warn("failed to encode response", zap.Error(err))
	}
}

// writeFormError reports a failed modal submit so the form can show it inline.
func writeFormError(w http.ResponseWriter, err error) {
	var verr *console.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, FormErrorResponse{Error: verr.Message, FormError: verr.Message, Fields: verr.Fields}, http.StatusUnprocessableEntity)
		return
	}

	status := statusFor(err)
	if status == statusClientClosed {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, FormErrorResponse{Error: err.Error(), FormError: err.Error()}, status)
}

// writeActionError reports a failed action. The controller has already
// raised a toast where one is due.
func writeActionError(w http.ResponseWriter, err error) {
	var verr *console.ValidationError
	if errors.As(err, &verr) {
		writeFormError(w, err)
		return
	}

	status := statusFor(err)
	if status == statusClientClosed {
		w.WriteHeader(status)
		return
	}
	WriteError(w, err.Error(), status)
}

func statusFor(err error) int {
	var apiErr *apiclient.Error
	switch {
	case apiclient.IsAborted(err):
		return statusClientClosed
	case errors.Is(err, console.ErrNoSelection), errors.Is(err, listing.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, listing.ErrUnknownFilter), errors.Is(err, listing.ErrUnknownColumn), errors.Is(err, listing.ErrUnknownTab):
		return http.StatusBadRequest
	case errors.Is(err, listing.ErrNoConfirm):
		return http.StatusConflict
	case errors.Is(err, session.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, console.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, storage.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
