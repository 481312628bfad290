package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveSettingsHandler(t *testing.T) {
	mockService := &MockSettingsService{}
	handler := NewSettingsHandler(mockService, RespondJSON, RespondError)

	body := `{"gross_income":5000,"red_line_amount":1200,"currency":"EUR","theme":"dark"}`
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/protected/settings", strings.NewReader(body)))
	w := httptest.NewRecorder()
	handler.SaveSettings(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, "EUR", mockService.lastInput.Currency)
	assert.NotNil(t, mockService.lastInput.GrossIncome)
	assert.Equal(t, float64(5000), *mockService.lastInput.GrossIncome)
	assert.NotNil(t, mockService.lastInput.Theme)
	assert.Equal(t, "dark", *mockService.lastInput.Theme)
}

func TestSaveSettingsHandler_CurrencyRequired(t *testing.T) {
	handler := NewSettingsHandler(&MockSettingsService{}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/protected/settings", strings.NewReader(`{"gross_income":5000}`)))
	w := httptest.NewRecorder()
	handler.SaveSettings(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Currency is required", response["message"])
}

func TestSaveSettingsHandler_InvalidTheme(t *testing.T) {
	handler := NewSettingsHandler(&MockSettingsService{}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/protected/settings",
		strings.NewReader(`{"currency":"USD","theme":"sepia"}`)))
	w := httptest.NewRecorder()
	handler.SaveSettings(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetSettingsHandler_AbsentSettingsIsOK(t *testing.T) {
	handler := NewSettingsHandler(&MockSettingsService{}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/protected/settings", nil))
	w := httptest.NewRecorder()
	handler.GetSettings(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Nil(t, response["data"])
}
