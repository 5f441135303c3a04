package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"franquia-backend/models"
)

func TestCreateProduct(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/network/products", map[string]interface{}{
		"sku":   "KIT-001",
		"name":  "Starter Kit",
		"price": 250.0,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["is_active"] != true {
		t.Error("new product should be active")
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	existing := seedProduct(db, "Original", 100)

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/network/products", map[string]interface{}{
		"sku":   existing.SKU,
		"name":  "Copycat",
		"price": 50.0,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestCreateProductDuplicateSKUIncludesSoftDeleted(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	existing := seedProduct(db, "Retired", 100)
	db.Delete(&existing)

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/network/products", map[string]interface{}{
		"sku":   existing.SKU,
		"name":  "Reborn",
		"price": 50.0,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for soft-deleted SKU", w.Code)
	}
}

func TestUpdateProductDeactivates(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	product := seedProduct(db, "Kit", 100)

	w := httptest.NewRecorder()
	req := authRequest("PUT", "/api/network/products/"+product.ID.String(), map[string]interface{}{
		"is_active": false,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var updated models.Product
	db.First(&updated, "id = ?", product.ID)
	if updated.IsActive {
		t.Error("product still active")
	}
	if updated.Price != 100 {
		t.Error("price changed on partial update")
	}
}

func TestDeleteProductWithSalesConflicts(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	f, _, _ := seedFranchise(db, "Unit A")
	client := seedClient(db, f.ID, "Ana")
	product := seedProduct(db, "Kit", 100)
	seedSale(db, f.ID, client.ID, product.ID)

	w := httptest.NewRecorder()
	req := authRequest("DELETE", "/api/network/products/"+product.ID.String(), nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestDeleteProductRemovesAllowListEntries(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	f, _, _ := seedFranchise(db, "Unit A")
	product := seedProduct(db, "Kit", 100)
	db.Create(&models.FranchiseProduct{FranchiseID: f.ID, ProductID: product.ID})

	w := httptest.NewRecorder()
	req := authRequest("DELETE", "/api/network/products/"+product.ID.String(), nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.FranchiseProduct{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Error("allow-list entry survived product deletion")
	}
}

func TestAddFranchiseProduct(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	f, _, _ := seedFranchise(db, "Unit A")
	product := seedProduct(db, "Kit", 100)

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/network/franchises/"+f.ID.String()+"/products", map[string]string{
		"product_id": product.ID.String(),
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestAddFranchiseProductDuplicate(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	f, _, _ := seedFranchise(db, "Unit A")
	product := seedProduct(db, "Kit", 100)
	db.Create(&models.FranchiseProduct{FranchiseID: f.ID, ProductID: product.ID})

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/network/franchises/"+f.ID.String()+"/products", map[string]string{
		"product_id": product.ID.String(),
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestRemoveFranchiseProduct(t *testing.T) {
	db := freshDB()
	r := setupContentRouter(db)
	_, token := seedFranchisor(db)
	f, _, _ := seedFranchise(db, "Unit A")
	product := seedProduct(db, "Kit", 100)
	db.Create(&models.FranchiseProduct{FranchiseID: f.ID, ProductID: product.ID})

	w := httptest.NewRecorder()
	req := authRequest("DELETE", "/api/network/franchises/"+f.ID.String()+"/products/"+product.ID.String(), nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.FranchiseProduct{}).Where("franchise_id = ?", f.ID).Count(&count)
	if count != 0 {
		t.Error("allow-list entry still present")
	}
}

func TestAvailableProductsFullCatalogWhenNoAllowList(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	_, _, token := seedFranchise(db, "Unit A")
	seedProduct(db, "Kit A", 100)
	seedProduct(db, "Kit B", 200)
	inactive := seedProduct(db, "Retired", 50)
	db.Model(&inactive).Update("is_active", false)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/products", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	products := parseResponseArray(w)
	if len(products) != 2 {
		t.Errorf("products = %d, want 2 active", len(products))
	}
}

func TestAvailableProductsHonorsAllowList(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	allowed := seedProduct(db, "Allowed", 100)
	seedProduct(db, "Not Allowed", 200)
	db.Create(&models.FranchiseProduct{FranchiseID: f.ID, ProductID: allowed.ID})

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/products", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	products := parseResponseArray(w)
	if len(products) != 1 {
		t.Fatalf("products = %d, want 1", len(products))
	}
	first := products[0].(map[string]interface{})
	if first["id"] != allowed.ID.String() {
		t.Errorf("id = %v, want %v", first["id"], allowed.ID)
	}
}
