package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearAllDataHandler(t *testing.T) {
	mockService := &MockErasureService{}
	handler := NewDataHandler(mockService, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/protected/data", nil))
	w := httptest.NewRecorder()
	handler.ClearAllData(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []string{testUserID}, mockService.clearedFor)
}

func TestClearAllDataHandler_FailureWarnsAboutPartialErasure(t *testing.T) {
	mockService := &MockErasureService{err: errors.New("clear transactions: deadlock detected")}
	handler := NewDataHandler(mockService, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/protected/data", nil))
	w := httptest.NewRecorder()
	handler.ClearAllData(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Contains(t, response["message"], "may be incomplete")
}

func TestClearAllDataHandler_Unauthorized(t *testing.T) {
	handler := NewDataHandler(&MockErasureService{}, RespondJSON, RespondError)

	req := httptest.NewRequest(http.MethodDelete, "/api/protected/data", nil)
	w := httptest.NewRecorder()
	handler.ClearAllData(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}
