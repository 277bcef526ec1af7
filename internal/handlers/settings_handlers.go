package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/auth"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/models"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/internal/services"
	"github.com/KarthikeyaVell/FinflowUtdHackathon/pkg/httputil"
)

// SettingsHandler handles HTTP requests for per-user assistant settings.
type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// HandleGetSettings handles GET /v1/settings.
func (h *SettingsHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	view, err := h.settings.GetSettings(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching settings for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.SettingsResponse{Settings: view})
}

// HandleUpdateSettings handles PUT /v1/settings.
func (h *SettingsHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	view, err := h.settings.UpdateSettings(r.Context(), userID, req)
	if err != nil {
		log.Printf("Error updating settings for user %s: %v", userID, err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.SettingsResponse{Settings: view})
}
