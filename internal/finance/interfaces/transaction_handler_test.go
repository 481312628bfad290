package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/finflow/finflow/internal/finance/application"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

func TestCreateTransactionHandler(t *testing.T) {
	mockService := &MockTransactionHandlerService{}
	handler := NewTransactionHandler(mockService, RespondJSON, RespondError)

	body := `{"type":"expense","amount":42.50,"note":"groceries","date":"2026-08-01T00:00:00Z"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/protected/transactions", strings.NewReader(body)))
	w := httptest.NewRecorder()
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Len(t, mockService.transactions, 1)
	assert.Equal(t, testUserID, mockService.transactions[0].UserID)
	assert.Equal(t, 42.50, mockService.transactions[0].Amount)
}

func TestCreateTransactionHandler_InvalidCategory(t *testing.T) {
	mockService := &MockTransactionHandlerService{err: financeErrors.ErrInvalidCategory}
	handler := NewTransactionHandler(mockService, RespondJSON, RespondError)

	body := `{"type":"expense","amount":10,"date":"2026-08-01T00:00:00Z","category_id":"` + uuid.New().String() + `"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/protected/transactions", strings.NewReader(body)))
	w := httptest.NewRecorder()
	handler.CreateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetTransactionsHandler_InvalidType(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionHandlerService{}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/protected/transactions?type=transfer", nil))
	w := httptest.NewRecorder()
	handler.GetTransactions(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetTransactionsHandler_InvalidDates(t *testing.T) {
	handler := NewTransactionHandler(&MockTransactionHandlerService{}, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/protected/transactions?start_date=08-2026", nil))
	w := httptest.NewRecorder()
	handler.GetTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Invalid start date format", response["message"])
}

func TestDeleteTransactionHandler_NotFound(t *testing.T) {
	mockService := &MockTransactionHandlerService{err: financeErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(mockService, RespondJSON, RespondError)

	transactionID := uuid.New()
	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/protected/transactions/"+transactionID.String(), nil))
	req.SetPathValue("transactionID", transactionID.String())
	w := httptest.NewRecorder()
	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestGetTransactionSummaryHandler(t *testing.T) {
	mockService := &MockTransactionHandlerService{
		summary: &application.TransactionSummary{
			IncomeTotal:  3000,
			ExpenseTotal: 240,
			Months:       []application.MonthSummary{{Month: "2026-01", IncomeTotal: 3000, ExpenseTotal: 240}},
			ByCategory:   []application.CategoryTotal{},
		},
	}
	handler := NewTransactionHandler(mockService, RespondJSON, RespondError)

	req := withUser(httptest.NewRequest(http.MethodGet,
		"/api/protected/transactions/summary?start_date=2026-01-01&end_date=2026-02-28", nil))
	w := httptest.NewRecorder()
	handler.GetTransactionSummary(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data application.TransactionSummary `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, float64(3000), response.Data.IncomeTotal)
	assert.Len(t, response.Data.Months, 1)
}
