package httpapi

import (
	"net/http"
	"time"

	"github.com/leaguehq/league-api/internal/domain/user"
	"github.com/leaguehq/league-api/internal/usecase"
)

type userDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Admin     bool   `json:"admin"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func userToDTO(item user.User) userDTO {
	return userDTO{
		ID:        item.ID,
		FirstName: item.FirstName,
		LastName:  item.LastName,
		Email:     item.Email,
		Admin:     item.Admin,
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	page := parsePageRequest(r)
	items, meta, err := h.userService.List(ctx, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "list users failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]userDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, userToDTO(item))
	}

	writeList(ctx, w, "Users retrieved successfully", dtos, meta)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUser")
	defer span.End()

	id, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.GetByID(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, "User retrieved successfully", userToDTO(item))
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentUser")
	defer span.End()

	current, ok := currentUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.Failf(usecase.ErrUnauthorized, "Unauthorized"))
		return
	}

	writeData(ctx, w, http.StatusOK, "User retrieved successfully", userToDTO(current))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateProfile")
	defer span.End()

	current, ok := currentUserFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.Failf(usecase.ErrUnauthorized, "Unauthorized"))
		return
	}

	var req updateProfileRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.userService.UpdateProfile(ctx, current.ID, usecase.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "profile update failed", "user_id", current.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, "User updated successfully", userToDTO(updated))
}
