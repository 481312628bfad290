package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/finflow/finflow/internal/finance/domain"
)

const testUserID = "b6f9c6e0-8f48-4f1e-9f2b-0d9272b6a001"

func withUser(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), "userID", testUserID))
}

func TestGetCategories_FiltersByType(t *testing.T) {
	mockService := &MockCategoryService{
		categories: []domain.Category{
			{ID: uuid.New(), UserID: testUserID, Name: "Salary", Type: "income", Color: "#059669"},
			{ID: uuid.New(), UserID: testUserID, Name: "Groceries", Type: "expense", Color: "#fbbf24"},
		},
	}
	handler := NewCategoryHandler(mockService, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/protected/categories?type=income", nil))
	w := httptest.NewRecorder()
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []domain.Category `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, "Salary", response.Data[0].Name)
}

func TestGetCategories_InvalidType(t *testing.T) {
	handler := NewCategoryHandler(&MockCategoryService{}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/protected/categories?type=invalidType", nil))
	w := httptest.NewRecorder()
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Invalid category type", response["message"])
}

func TestGetCategories_Unauthorized(t *testing.T) {
	handler := NewCategoryHandler(&MockCategoryService{}, RespondJSON, RespondError)

	req := httptest.NewRequest(http.MethodGet, "/api/protected/categories", nil)
	w := httptest.NewRecorder()
	handler.GetCategories(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestGetCategories_ErrorFromService(t *testing.T) {
	handler := NewCategoryHandler(&MockCategoryService{shouldFail: true}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/protected/categories", nil))
	w := httptest.NewRecorder()
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Failed to retrieve categories", response["message"])
}
