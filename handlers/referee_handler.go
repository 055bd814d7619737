package handlers

import (
	"net/http"

	"github.com/Dosada05/betting-league/services"
)

type RefereeHandler struct {
	refereeService services.RefereeService
}

func NewRefereeHandler(refereeService services.RefereeService) *RefereeHandler {
	return &RefereeHandler{refereeService: refereeService}
}

func (h *RefereeHandler) List(w http.ResponseWriter, r *http.Request) {
	referees, err := h.refereeService.ListReferees(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"referees": referees}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RefereeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	referee, err := h.refereeService.GetRefereeByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"referee": referee}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
