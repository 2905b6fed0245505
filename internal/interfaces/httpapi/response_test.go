package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/leaguehq/league-api/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	writeData(context.Background(), rec, http.StatusCreated, "Team created successfully", map[string]string{"name": "Arsenal"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}

	body := decodeEnvelope(t, rec)
	if got, _ := body["message"].(string); got != "Team created successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["errors"]; ok {
		t.Fatalf("did not expect errors key in success response")
	}
}

func TestWriteList(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := usecase.NewPageMeta(usecase.PageRequest{}, 0)
	writeList(context.Background(), rec, "Teams retrieved successfully", []string{}, meta)

	body := decodeEnvelope(t, rec)
	metaObj, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected meta object, got %v", body["meta"])
	}
	if got, _ := metaObj["page_count"].(float64); got != 1 {
		t.Fatalf("expected page_count=1 for an empty collection, got %v", metaObj["page_count"])
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"unauthorized":   {usecase.Failf(usecase.ErrUnauthorized, "Invalid token"), http.StatusUnauthorized},
		"not found":      {usecase.Failf(usecase.ErrNotFound, "Team not found"), http.StatusNotFound},
		"invalid input":  {usecase.Failf(usecase.ErrInvalidInput, "Validation failed"), http.StatusBadRequest},
		"already exists": {usecase.Failf(usecase.ErrAlreadyExists, "Fixture already exists"), http.StatusBadRequest},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
			body := decodeEnvelope(t, rec)
			if got, _ := body["message"].(string); got != tc.err.Error() {
				t.Fatalf("expected message %q, got %v", tc.err.Error(), body["message"])
			}
		})
	}
}

func TestWriteErrorFieldErrors(t *testing.T) {
	fields := usecase.FieldErrors{}
	fields.Add("name", "has already been taken")

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, usecase.FailFields("Team could not be created", fields))

	body := decodeEnvelope(t, rec)
	errorsObj, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors object, got %v", body["errors"])
	}
	messages, ok := errorsObj["name"].([]any)
	if !ok || len(messages) != 1 || messages[0] != "has already been taken" {
		t.Fatalf("unexpected field errors: %v", errorsObj)
	}
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, context.DeadlineExceeded)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if got, _ := body["message"].(string); got != "Something went wrong" {
		t.Fatalf("internal details leaked: %v", body["message"])
	}
}
