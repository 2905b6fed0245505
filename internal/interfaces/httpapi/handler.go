package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/leaguehq/league-api/internal/platform/logging"
	"github.com/leaguehq/league-api/internal/usecase"
)

type Handler struct {
	authService    *usecase.AuthService
	userService    *usecase.UserService
	teamService    *usecase.TeamService
	fixtureService *usecase.FixtureService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	userService *usecase.UserService,
	teamService *usecase.TeamService,
	fixtureService *usecase.FixtureService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		authService:    authService,
		userService:    userService,
		teamService:    teamService,
		fixtureService: fixtureService,
		logger:         logger,
		validator:      v,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeData(ctx, w, http.StatusOK, "OK", map[string]string{"status": "ok"})
}

// decodeRequest parses a JSON body into payload. An empty body leaves
// the payload at its zero value so required-field validation reports
// the missing fields instead of a parse error.
func decodeRequest(r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)

	if err := decoder.Decode(payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return usecase.Failf(usecase.ErrInvalidInput, "Request body is not valid JSON")
	}

	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return usecase.Failf(usecase.ErrInvalidInput, "Invalid request")
	}

	fields := usecase.FieldErrors{}
	for _, fieldErr := range invalid {
		fields.Add(fieldErr.Field(), validationMessage(fieldErr))
	}
	return usecase.FailFields("Validation failed", fields)
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "can't be blank"
	case "email":
		return "is invalid"
	case "min":
		return "is too short (minimum is " + err.Param() + " characters)"
	case "max":
		return "is too long (maximum is " + err.Param() + " characters)"
	default:
		return "is invalid"
	}
}

// pathID parses a numeric path segment; anything non-numeric behaves
// like a missing record.
func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, usecase.Failf(usecase.ErrNotFound, "Not found")
	}
	return id, nil
}

func parsePageRequest(r *http.Request) usecase.PageRequest {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	return usecase.PageRequest{Page: page, PerPage: perPage}
}
