package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/services"
)

type MatchHandler struct {
	matchService      services.MatchService
	simulationService services.SimulationService
}

func NewMatchHandler(matchService services.MatchService, simulationService services.SimulationService) *MatchHandler {
	return &MatchHandler{
		matchService:      matchService,
		simulationService: simulationService,
	}
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatchByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMatchFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateKickoffInput struct {
	Kickoff time.Time `json:"kickoff" validate:"required"`
}

func (h *MatchHandler) UpdateKickoff(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input updateKickoffInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	match, err := h.matchService.UpdateKickoff(r.Context(), id, input.Kickoff)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.simulationService.SimulateMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type generateScheduleInput struct {
	Start         *time.Time `json:"start,omitempty"`
	IntervalHours int        `json:"interval_hours,omitempty" validate:"omitempty,gt=0"`
}

func (h *MatchHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var input generateScheduleInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	// Fixtures start tomorrow, one per day, unless told otherwise.
	start := time.Now().Add(24 * time.Hour)
	if input.Start != nil {
		start = *input.Start
	}
	if input.IntervalHours == 0 {
		input.IntervalHours = 24
	}

	matches, err := h.matchService.GenerateRoundRobin(r.Context(), start, time.Duration(input.IntervalHours)*time.Hour)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func parseMatchFilter(r *http.Request) (models.MatchFilter, error) {
	var filter models.MatchFilter
	query := r.URL.Query()

	if v := query.Get("team_id"); v != "" {
		teamID, err := strconv.Atoi(v)
		if err != nil || teamID <= 0 {
			return filter, errInvalidQueryParam("team_id")
		}
		filter.TeamID = &teamID
	}
	if v := query.Get("referee_id"); v != "" {
		refereeID, err := strconv.Atoi(v)
		if err != nil || refereeID <= 0 {
			return filter, errInvalidQueryParam("referee_id")
		}
		filter.RefereeID = &refereeID
	}
	if v := query.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errInvalidQueryParam("from")
		}
		filter.From = &from
	}
	if v := query.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errInvalidQueryParam("to")
		}
		filter.To = &to
	}
	if v := query.Get("resolved"); v != "" {
		resolved, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errInvalidQueryParam("resolved")
		}
		filter.Resolved = &resolved
	}

	return filter, nil
}
