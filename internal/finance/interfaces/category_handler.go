package interfaces

import (
	"context"
	"net/http"

	"github.com/finflow/finflow/internal/finance/domain"
)

type CategoryServiceInterface interface {
	List(ctx context.Context, userID string) ([]domain.Category, error)
	EnsureDefaults(ctx context.Context, userID string) ([]domain.Category, error)
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetCategories seeds the default catalog for first-time users and returns
// the deduplicated list, optionally filtered by type.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categoryType := r.URL.Query().Get("type")
	if categoryType != "" && categoryType != "income" && categoryType != "expense" {
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
		return
	}

	categories, err := h.service.EnsureDefaults(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	if categoryType != "" {
		filtered := make([]domain.Category, 0, len(categories))
		for _, category := range categories {
			if category.Type == categoryType {
				filtered = append(filtered, category)
			}
		}
		categories = filtered
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Categories retrieved successfully.",
		"data":    categories,
	})
}
