package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/finflow/finflow/internal/finance/application"
	"github.com/finflow/finflow/internal/finance/domain"
)

type SettingsServiceInterface interface {
	GetForUser(ctx context.Context, userID string) (*domain.UserSettings, error)
	Upsert(ctx context.Context, userID string, input application.SettingsInput) (*domain.UserSettings, error)
}

type SettingsHandler struct {
	service      SettingsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSettingsHandler(
	service SettingsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SettingsHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &SettingsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetSettings returns the user's settings row, or null data when the user has
// never saved settings.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	settings, err := h.service.GetForUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Settings retrieved successfully.",
		"data":    settings,
	})
}

func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		GrossIncome   *float64 `json:"gross_income"`
		RedLineAmount *float64 `json:"red_line_amount"`
		Currency      string   `json:"currency"`
		Theme         *string  `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Currency == "" {
		h.respondError(w, http.StatusBadRequest, "Currency is required")
		return
	}
	if req.Theme != nil && *req.Theme != "light" && *req.Theme != "dark" {
		h.respondError(w, http.StatusBadRequest, "Invalid theme")
		return
	}

	settings, err := h.service.Upsert(r.Context(), userID, application.SettingsInput{
		GrossIncome:   req.GrossIncome,
		RedLineAmount: req.RedLineAmount,
		Currency:      req.Currency,
		Theme:         req.Theme,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Settings saved successfully.",
		"data":    settings,
	})
}
