package httpapi

import (
	"net/http"
	"time"

	"github.com/leaguehq/league-api/internal/domain/fixture"
	"github.com/leaguehq/league-api/internal/usecase"
)

type fixtureDTO struct {
	ID         int64  `json:"id"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	MatchDate  string `json:"match_date"`
	HomeGoals  *int   `json:"home_goals"`
	AwayGoals  *int   `json:"away_goals"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func fixtureToDTO(item fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:         item.ID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		HomeTeam:   item.HomeTeam,
		AwayTeam:   item.AwayTeam,
		MatchDate:  item.MatchDate.UTC().Format(time.RFC3339),
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		Status:     string(item.Status),
		CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type createFixtureRequest struct {
	HomeTeamID int64  `json:"home_team_id" validate:"required"`
	AwayTeamID int64  `json:"away_team_id" validate:"required"`
	MatchDate  string `json:"match_date" validate:"required"`
	HomeGoals  *int   `json:"home_goals"`
	AwayGoals  *int   `json:"away_goals"`
}

type updateFixtureRequest struct {
	HomeTeamID *int64  `json:"home_team_id"`
	AwayTeamID *int64  `json:"away_team_id"`
	MatchDate  *string `json:"match_date"`
	HomeGoals  *int    `json:"home_goals"`
	AwayGoals  *int    `json:"away_goals"`
}

func parseMatchDate(raw string) (time.Time, error) {
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		fields := usecase.FieldErrors{}
		fields.Add("match_date", "must be an RFC 3339 timestamp")
		return time.Time{}, usecase.FailFields("Validation failed", fields)
	}
	return at, nil
}

func (h *Handler) SearchFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchFixtures")
	defer span.End()

	query := r.URL.Query()
	items, meta, err := h.fixtureService.Search(ctx, usecase.SearchFixturesInput{
		TeamName:  query.Get("team_name"),
		Side:      query.Get("side"),
		Status:    query.Get("status"),
		MatchDate: query.Get("match_date"),
		Page:      parsePageRequest(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "search fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, fixtureToDTO(item))
	}

	writeList(ctx, w, "Fixtures retrieved successfully", dtos, meta)
}

func (h *Handler) GetFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixture")
	defer span.End()

	id, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.GetByID(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, "Fixture retrieved successfully", fixtureToDTO(item))
}

func (h *Handler) CreateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFixture")
	defer span.End()

	var req createFixtureRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchDate, err := parseMatchDate(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.fixtureService.Create(ctx, usecase.CreateFixtureInput{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		MatchDate:  matchDate,
		HomeGoals:  req.HomeGoals,
		AwayGoals:  req.AwayGoals,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create fixture failed",
			"home_team_id", req.HomeTeamID,
			"away_team_id", req.AwayTeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusCreated, "Fixture created successfully", fixtureToDTO(created))
}

func (h *Handler) UpdateFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFixture")
	defer span.End()

	id, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateFixtureRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	in := usecase.UpdateFixtureInput{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		HomeGoals:  req.HomeGoals,
		AwayGoals:  req.AwayGoals,
	}
	if req.MatchDate != nil {
		matchDate, err := parseMatchDate(*req.MatchDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		in.MatchDate = &matchDate
	}

	updated, err := h.fixtureService.Update(ctx, id, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update fixture failed", "fixture_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, http.StatusOK, "Fixture updated successfully", fixtureToDTO(updated))
}

func (h *Handler) DeleteFixture(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFixture")
	defer span.End()

	id, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.fixtureService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete fixture failed", "fixture_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeMessage(ctx, w, "Fixture deleted successfully")
}
