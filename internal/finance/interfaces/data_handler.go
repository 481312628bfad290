package interfaces

import (
	"context"
	"net/http"
)

type ErasureServiceInterface interface {
	ClearAllUserData(ctx context.Context, userID string) error
}

type DataHandler struct {
	service      ErasureServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewDataHandler(
	service ErasureServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *DataHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &DataHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// ClearAllData wipes every finance row the user owns. A failure means the
// erasure may be partial, so the client is told to retry.
func (h *DataHandler) ClearAllData(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.ClearAllUserData(r.Context(), userID); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Data erasure failed and may be incomplete, please retry")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "All data successfully deleted.",
	})
}
