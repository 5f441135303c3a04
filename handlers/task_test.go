package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"franquia-backend/models"
)

func TestCreateTask(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, owner, token := seedFranchise(db, "Unit A")

	w := httptest.NewRecorder()
	req := authRequest("POST", "/api/franchise/tasks", map[string]interface{}{
		"title":       "Call supplier",
		"assignee_id": owner.ID.String(),
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := db.Where("franchise_id = ?", f.ID).First(&task).Error; err != nil {
		t.Fatal("task not persisted")
	}
	if task.Done {
		t.Error("new task should start open")
	}
}

func TestGetTasksDoneFilter(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	seedTask(db, f.ID, "Open task", false)
	seedTask(db, f.ID, "Closed task", true)

	w := httptest.NewRecorder()
	req := authRequest("GET", "/api/franchise/tasks?done=false", nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	tasks := parseResponseArray(w)
	if len(tasks) != 1 {
		t.Errorf("tasks = %d, want 1", len(tasks))
	}
}

func TestUpdateTaskMarksDone(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	f, _, token := seedFranchise(db, "Unit A")
	task := seedTask(db, f.ID, "Open task", false)

	w := httptest.NewRecorder()
	req := authRequest("PUT", "/api/franchise/tasks/"+task.ID.String(), map[string]interface{}{
		"done": true,
	}, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var updated models.Task
	db.First(&updated, "id = ?", task.ID)
	if !updated.Done {
		t.Error("task not marked done")
	}
	if updated.Title != "Open task" {
		t.Error("title changed on partial update")
	}
}

func TestDeleteTaskNotFoundAcrossFranchises(t *testing.T) {
	db := freshDB()
	r := setupFranchiseRouter(db)
	_, _, token := seedFranchise(db, "Unit A")
	other, _, _ := seedFranchise(db, "Unit B")
	foreign := seedTask(db, other.ID, "Foreign task", false)

	w := httptest.NewRecorder()
	req := authRequest("DELETE", "/api/franchise/tasks/"+foreign.ID.String(), nil, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
