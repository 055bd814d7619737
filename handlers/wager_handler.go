package handlers

import (
	"net/http"

	"github.com/Dosada05/betting-league/middleware"
	"github.com/Dosada05/betting-league/services"
)

type WagerHandler struct {
	bettingService services.BettingService
}

func NewWagerHandler(bettingService services.BettingService) *WagerHandler {
	return &WagerHandler{bettingService: bettingService}
}

func (h *WagerHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.PlaceWagerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if fields := validateInput(input); fields != nil {
		failedValidationResponse(w, r, fields)
		return
	}

	wager, balance, err := h.bettingService.PlaceWager(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"wager":   wager,
		"balance": balance,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *WagerHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	wagers, err := h.bettingService.ListUserWagers(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"wagers": wagers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
