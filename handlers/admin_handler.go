package handlers

import (
	"net/http"

	"github.com/Dosada05/betting-league/middleware"
	"github.com/Dosada05/betting-league/models"
	"github.com/Dosada05/betting-league/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type changeRoleInput struct {
	Role models.UserRole `json:"role" validate:"required"`
}

func (h *AdminHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	changedBy, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input changeRoleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	change, err := h.adminService.ChangeUserRole(r.Context(), userID, input.Role, changedBy)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"role_change": change}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ListRoleChanges(w http.ResponseWriter, r *http.Request) {
	changes, err := h.adminService.ListRoleChanges(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"role_changes": changes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
