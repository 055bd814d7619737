package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/betting-league/services"
)

type StatsHandler struct {
	statsService services.StatsService
	graphService services.GraphService
}

func NewStatsHandler(statsService services.StatsService, graphService services.GraphService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		graphService: graphService,
	}
}

// TeamStats serves a single team's stats when team_id is given, and the
// full league table otherwise.
func (h *StatsHandler) TeamStats(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("team_id"); v != "" {
		teamID, err := strconv.Atoi(v)
		if err != nil || teamID <= 0 {
			badRequestResponse(w, r, errInvalidQueryParam("team_id"))
			return
		}

		stats, err := h.statsService.TeamStats(r.Context(), teamID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}

		if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	table, err := h.statsService.LeagueTable(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"table": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) ScheduleGraph(w http.ResponseWriter, r *http.Request) {
	var startTeamID *int
	if v := r.URL.Query().Get("start_team_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, errInvalidQueryParam("start_team_id"))
			return
		}
		startTeamID = &id
	}

	graph, err := h.graphService.BuildScheduleGraph(r.Context(), startTeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"graph": graph}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
