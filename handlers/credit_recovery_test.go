package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"franquia-backend/models"
)

func seedRecoveryCase(db *gorm.DB, franchiseID, clientID uuid.UUID, status string) models.CreditRecoveryCase {
	rc := models.CreditRecoveryCase{
		ID:          uuid.New(),
		FranchiseID: franchiseID,
		ClientID:    clientID,
		DebtAmount:  2500,
		Status:      status,
	}
	db.Create(&rc)
	return rc
}

func TestCreateRecoveryCase(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Ana")

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/franchise/recovery-cases", map[string]interface{}{
		"client_id":   client.ID.String(),
		"debt_amount": 3200.0,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["status"] != "open" {
		t.Errorf("status = %v, want open", resp["status"])
	}
}

func TestCreateRecoveryCaseRejectsForeignClient(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	_, _, token := seedFranchise(db, "Unit A")
	other, _, _ := seedFranchise(db, "Unit B")
	foreign := seedClient(db, other.ID, "Bruno")

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/franchise/recovery-cases", map[string]interface{}{
		"client_id":   foreign.ID.String(),
		"debt_amount": 1000.0,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetRecoveryCasesStatusFilter(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Ana")
	seedRecoveryCase(db, f.ID, client.ID, "open")
	seedRecoveryCase(db, f.ID, client.ID, "recovered")

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/recovery-cases?status=recovered", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	cases := parseResponseArray(w)
	if len(cases) != 1 {
		t.Errorf("cases = %d, want 1", len(cases))
	}
}

func TestUpdateRecoveryCaseStatus(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Ana")
	rc := seedRecoveryCase(db, f.ID, client.ID, "open")

	w := httptest.NewRecorder()
	req := authRequest("PUT", "/api/franchise/recovery-cases/"+rc.ID.String()+"/status", map[string]string{
		"status": "written_off",
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var updated models.CreditRecoveryCase
	db.First(&updated, "id = ?", rc.ID)
	if updated.Status != "written_off" {
		t.Errorf("status = %q, want written_off", updated.Status)
	}
}

func TestUpdateRecoveryCaseInvalidStatus(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Ana")
	rc := seedRecoveryCase(db, f.ID, client.ID, "open")

	w := httptest.NewRecorder()
	req := authRequest("PUT", "/api/franchise/recovery-cases/"+rc.ID.String()+"/status", map[string]string{
		"status": "abandoned",
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteRecoveryCase(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Ana")
	rc := seedRecoveryCase(db, f.ID, client.ID, "open")

	w := httptest.NewRecorder()
	req := authRequest("DELETE", "/api/franchise/recovery-cases/"+rc.ID.String(), nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.CreditRecoveryCase{}).Where("id = ?", rc.ID).Count(&count)
	if count != 0 {
		t.Error("case still visible after delete")
	}
}
