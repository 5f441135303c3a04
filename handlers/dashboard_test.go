package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"franquia-backend/models"
)

func TestNetworkDashboard(t *testing.T) {
	db := freshDB()
	r := setupNetworkRouter(db)
	_, token := seedFranchisor(db)

	fA, _, _ := seedFranchise(db, "Unit A")
	fB, _, _ := seedFranchise(db, "Unit B")
	clientA := seedClient(db, fA.ID, "Client A")
	seedConsortium(db, fA.ID, clientA.ID, 100000)
	seedTransaction(db, fA.ID, models.TransactionIncome, 60000)
	seedTransaction(db, fA.ID, models.TransactionExpense, 20000)
	seedTransaction(db, fB.ID, models.TransactionIncome, 10000)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/network/dashboard", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	network, ok := resp["network"].(map[string]interface{})
	if !ok {
		t.Fatal("response missing network rollup")
	}
	if network["total_revenue"].(float64) != 100000 {
		t.Errorf("total_revenue = %v, want 100000", network["total_revenue"])
	}
	if network["total_profit"].(float64) != 50000 {
		t.Errorf("total_profit = %v, want 50000", network["total_profit"])
	}

	franchises, ok := resp["franchises"].([]interface{})
	if !ok || len(franchises) != 2 {
		t.Fatalf("franchises = %v, want 2 entries", resp["franchises"])
	}
}

func TestNetworkDashboardRequiresFranchisor(t *testing.T) {
	db := freshDB()
	r := setupNetworkRouter(db)
	_, _, token := seedFranchise(db, "Unit A")

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/network/dashboard", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestListFranchisesWithStats(t *testing.T) {
	db := freshDB()
	r := setupNetworkRouter(db)
	_, token := seedFranchisor(db)

	f, _, _ := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Client")
	seedLead(db, f.ID, client.ID, models.LeadStatusWon)
	seedLead(db, f.ID, client.ID, models.LeadStatusLost)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/network/franchises/stats", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	list := parseResponseArray(w)
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	entry := list[0].(map[string]interface{})
	if entry["conversion_rate"].(float64) != 0.5 {
		t.Errorf("conversion_rate = %v, want 0.5", entry["conversion_rate"])
	}
	if entry["status"] == nil {
		t.Error("entry missing status tier")
	}
}

func TestFranchiseDrilldownView(t *testing.T) {
	db := freshDB()
	r := setupNetworkRouter(db)
	_, token := seedFranchisor(db)

	fA, _, _ := seedFranchise(db, "Unit A")
	fB, _, _ := seedFranchise(db, "Unit B")
	clientA := seedClient(db, fA.ID, "Client A")
	seedClient(db, fB.ID, "Client B")
	seedLead(db, fA.ID, clientA.ID, models.LeadStatusNew)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/network/franchises/"+fA.ID.String()+"/dashboard", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	view, ok := resp["view"].(map[string]interface{})
	if !ok {
		t.Fatal("response missing view")
	}
	clients := view["clients"].([]interface{})
	if len(clients) != 1 {
		t.Errorf("clients in view = %d, want only unit A's", len(clients))
	}
	if resp["stats"] == nil {
		t.Error("response missing stats")
	}
}

func TestFranchiseDrilldownUnknownID(t *testing.T) {
	db := freshDB()
	r := setupNetworkRouter(db)
	_, token := seedFranchisor(db)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/network/franchises/00000000-0000-0000-0000-000000000001/dashboard", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMyDashboard(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)

	f, _, token := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Client")
	seedLead(db, f.ID, client.ID, models.LeadStatusNew)
	seedLead(db, f.ID, client.ID, models.LeadStatusWon)
	seedTask(db, f.ID, "Open task", false)
	seedTask(db, f.ID, "Done task", true)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/dashboard", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["open_leads"].(float64) != 1 {
		t.Errorf("open_leads = %v, want 1", resp["open_leads"])
	}
	if resp["client_count"].(float64) != 1 {
		t.Errorf("client_count = %v, want 1", resp["client_count"])
	}
	if resp["pending_tasks"].(float64) != 1 {
		t.Errorf("pending_tasks = %v, want 1", resp["pending_tasks"])
	}
	if resp["stats"] == nil {
		t.Error("response missing stats")
	}
}

// A franchisee's scoped view never leaks another unit's rows, regardless of
// query parameters.
func TestScopedViewPinsFranchisee(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)

	fA, _, tokenA := seedFranchise(db, "Unit A")
	fB, _, _ := seedFranchise(db, "Unit B")
	seedClient(db, fA.ID, "Client A")
	seedClient(db, fB.ID, "Client B")

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/view?franchise_id="+fB.ID.String(), nil, tokenA)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	franchise := resp["franchise"].(map[string]interface{})
	if franchise["id"] != fA.ID.String() {
		t.Errorf("view franchise = %v, want caller's own unit %v", franchise["id"], fA.ID)
	}
	clients := resp["clients"].([]interface{})
	if len(clients) != 1 {
		t.Fatalf("clients = %d, want 1", len(clients))
	}
	if clients[0].(map[string]interface{})["name"] != "Client A" {
		t.Error("scoped view leaked another unit's client")
	}
}
