package httpapi

import (
	"net/http"

	"github.com/leaguehq/league-api/internal/usecase"
)

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, raw, err := h.authService.Register(ctx, usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(AuthTokenHeader, "Bearer "+raw)
	writeData(ctx, w, http.StatusCreated, "Registration successful", userToDTO(created))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	current, raw, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(AuthTokenHeader, "Bearer "+raw)
	writeData(ctx, w, http.StatusOK, "Login successful", userToDTO(current))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	current, ok := currentUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.Failf(usecase.ErrUnauthorized, "Unauthorized"))
		return
	}

	if err := h.authService.Logout(ctx, current.ID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "user_id", current.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// The stored token is gone, so do not echo the presented one back.
	w.Header().Del(AuthTokenHeader)
	writeMessage(ctx, w, "Logout successful")
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePassword")
	defer span.End()

	current, ok := currentUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.Failf(usecase.ErrUnauthorized, "Unauthorized"))
		return
	}

	var req updatePasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.UpdatePassword(ctx, current.ID, req.CurrentPassword, req.NewPassword); err != nil {
		h.logger.WarnContext(ctx, "password update failed", "user_id", current.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeMessage(ctx, w, "Password updated successfully")
}
