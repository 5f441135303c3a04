package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"franquia-backend/models"
)

func TestCreateTransaction(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/franchise/transactions", map[string]interface{}{
		"amount":      1500.0,
		"type":        "income",
		"description": "Monthly fee",
		"category":    "royalties",
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var tr models.Transaction
	if err := db.Where("franchise_id = ?", f.ID).First(&tr).Error; err != nil {
		t.Fatal("transaction not persisted")
	}
	if tr.Type != models.TransactionIncome || tr.Amount != 1500 {
		t.Errorf("got type=%v amount=%v, want income 1500", tr.Type, tr.Amount)
	}
}

func TestCreateTransactionRejectsUnknownType(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	_, _, token := seedFranchise(db, "Unit A")

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/franchise/transactions", map[string]interface{}{
		"amount": 100.0,
		"type":   "transfer",
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	_, _, token := seedFranchise(db, "Unit A")

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/franchise/transactions", map[string]interface{}{
		"amount": -10.0,
		"type":   "expense",
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetTransactionsTypeFilter(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	seedTransaction(db, f.ID, models.TransactionIncome, 1000)
	seedTransaction(db, f.ID, models.TransactionExpense, 300)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/transactions?type=expense", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	transactions := parseResponseArray(w)
	if len(transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(transactions))
	}
}

func TestGetTransactionsScopedToFranchise(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	other, _, _ := seedFranchise(db, "Unit B")
	seedTransaction(db, f.ID, models.TransactionIncome, 1000)
	seedTransaction(db, other.ID, models.TransactionIncome, 2000)
	seedTransaction(db, models.NetworkFranchiseID, models.TransactionIncome, 5000)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/transactions", nil, token)
	r.ServeHTTP(w, req)

	transactions := parseResponseArray(w)
	if len(transactions) != 1 {
		t.Errorf("transactions = %d, want only the unit's own", len(transactions))
	}
}

func TestGetNetworkTransactions(t *testing.T) {
	db := freshDB()
	r := setupNetworkRouter(db)
	_, token := seedFranchisor(db)
	f, _, _ := seedFranchise(db, "Unit A")
	seedTransaction(db, f.ID, models.TransactionIncome, 1000)
	seedTransaction(db, models.NetworkFranchiseID, models.TransactionExpense, 8000)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/network/transactions", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	transactions := parseResponseArray(w)
	if len(transactions) != 1 {
		t.Fatalf("transactions = %d, want only franchisor-level rows", len(transactions))
	}
	first := transactions[0].(map[string]interface{})
	if amount, _ := first["amount"].(float64); amount != 8000 {
		t.Errorf("amount = %v, want 8000", first["amount"])
	}
}

func TestDeleteTransactionScopedToFranchise(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	_, _, token := seedFranchise(db, "Unit A")
	other, _, _ := seedFranchise(db, "Unit B")
	foreign := seedTransaction(db, other.ID, models.TransactionIncome, 1000)

	w := httptest.NewRecorder()
	req := authRequest("DELETE", "/api/franchise/transactions/"+foreign.ID.String(), nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for another unit's row", w.Code)
	}

	var count int64
	db.Model(&models.Transaction{}).Where("id = ?", foreign.ID).Count(&count)
	if count != 1 {
		t.Error("foreign transaction was deleted")
	}
}
