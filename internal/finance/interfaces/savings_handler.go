package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/application"
	"github.com/finflow/finflow/internal/finance/domain"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

type SavingsServiceInterface interface {
	List(ctx context.Context, userID string) ([]domain.SavingsGoal, error)
	Create(ctx context.Context, input application.CreateGoalInput) (*domain.SavingsGoal, error)
	Update(ctx context.Context, id uuid.UUID, userID string, update domain.SavingsGoalUpdate) (*domain.SavingsGoal, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

type SavingsHandler struct {
	service      SavingsServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSavingsHandler(
	service SavingsServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SavingsHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &SavingsHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *SavingsHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve savings goals")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goals retrieved successfully.",
		"data":    goals,
	})
}

func (h *SavingsHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name         string     `json:"name"`
		TargetAmount float64    `json:"target_amount"`
		Deadline     *time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.service.Create(r.Context(), application.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create savings goal")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully created.",
		"data":    goal,
	})
}

// UpdateGoal applies a partial update. A "deadline" key whose value is null
// clears the deadline; an absent key leaves it untouched.
func (h *SavingsHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update, err := decodeGoalUpdate(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.service.Update(r.Context(), goalID, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, financeErrors.ErrEmptyUpdate):
			h.respondError(w, http.StatusBadRequest, "No fields to update")
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, financeErrors.ErrGoalNotFound):
			h.respondError(w, http.StatusNotFound, "Savings goal not found")
		case errors.Is(err, financeErrors.ErrUnauthorizedAccess):
			h.respondError(w, http.StatusForbidden, "Access denied")
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to update savings goal")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully updated.",
		"data":    goal,
	})
}

func (h *SavingsHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goalID, err := uuid.Parse(r.PathValue("goalID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	if err := h.service.Delete(r.Context(), goalID, userID); err != nil {
		switch {
		case errors.Is(err, financeErrors.ErrGoalNotFound):
			h.respondError(w, http.StatusNotFound, "Savings goal not found")
		case errors.Is(err, financeErrors.ErrUnauthorizedAccess):
			h.respondError(w, http.StatusForbidden, "Access denied")
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to delete savings goal")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully deleted.",
	})
}

func decodeGoalUpdate(raw map[string]json.RawMessage) (domain.SavingsGoalUpdate, error) {
	var update domain.SavingsGoalUpdate

	if value, exists := raw["name"]; exists {
		if err := json.Unmarshal(value, &update.Name); err != nil {
			return update, err
		}
	}
	if value, exists := raw["target_amount"]; exists {
		if err := json.Unmarshal(value, &update.TargetAmount); err != nil {
			return update, err
		}
	}
	if value, exists := raw["current_amount"]; exists {
		if err := json.Unmarshal(value, &update.CurrentAmount); err != nil {
			return update, err
		}
	}
	if value, exists := raw["deadline"]; exists {
		update.SetDeadline = true
		if err := json.Unmarshal(value, &update.Deadline); err != nil {
			return update, err
		}
	}
	return update, nil
}
