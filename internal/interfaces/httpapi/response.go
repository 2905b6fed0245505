package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/leaguehq/league-api/internal/usecase"
)

// envelope is the shape of every API response. data is omitted on
// failures, meta appears on paginated lists only, errors carries
// per-field validation messages.
type envelope struct {
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Meta    *usecase.PageMeta   `json:"meta,omitempty"`
	Errors  usecase.FieldErrors `json:"errors,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeData(ctx context.Context, w http.ResponseWriter, status int, message string, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeData")
	defer span.End()

	writeJSON(ctx, w, status, envelope{Message: message, Data: data})
}

func writeList(ctx context.Context, w http.ResponseWriter, message string, data any, meta usecase.PageMeta) {
	ctx, span := startSpan(ctx, "httpapi.writeList")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, envelope{Message: message, Data: data, Meta: &meta})
}

func writeMessage(ctx context.Context, w http.ResponseWriter, message string) {
	ctx, span := startSpan(ctx, "httpapi.writeMessage")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, envelope{Message: message})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status := mapError(err)
	body := envelope{Message: defaultErrorMessage(status)}

	var fail *usecase.Fail
	if errors.As(err, &fail) {
		body.Message = fail.Message
		if !fail.Fields.Empty() {
			body.Errors = fail.Fields
		}
	}

	writeJSON(ctx, w, status, body)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, envelope{
		Message: defaultErrorMessage(http.StatusInternalServerError),
	})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func defaultErrorMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusNotFound:
		return "Not found"
	default:
		return "Something went wrong"
	}
}
