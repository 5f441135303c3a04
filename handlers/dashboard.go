package handlers

import (
	"net/http"

	"franquia-backend/models"
	"franquia-backend/scope"
	"franquia-backend/stats"
	"franquia-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardHandler serves the derived views: per-franchise stats, the network
// rollup and the role-scoped snapshot projections. All derivation happens on
// an in-memory snapshot through the stats and scope packages.
type DashboardHandler struct {
	DB *gorm.DB
}

// principalFrom rebuilds the authenticated principal from context keys set by
// the auth middleware.
func principalFrom(c *gin.Context) scope.Principal {
	p := scope.Principal{}
	if role, ok := c.Get("user_role"); ok {
		p.Role = role.(string)
	}
	if fid, ok := c.Get("franchise_id"); ok {
		id := fid.(uuid.UUID)
		p.FranchiseID = &id
	}
	return p
}

// GET /api/network/franchises/stats — every unit with its derived stats.
func (h *DashboardHandler) ListFranchisesWithStats(c *gin.Context) {
	snap, err := store.LoadSnapshot(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}

	c.JSON(http.StatusOK, stats.ForAll(snap))
}

// GET /api/network/dashboard — network-wide rollup.
func (h *DashboardHandler) NetworkDashboard(c *gin.Context) {
	snap, err := store.LoadSnapshot(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}

	all := stats.ForAll(snap)
	c.JSON(http.StatusOK, gin.H{
		"network":    stats.Network(all),
		"franchises": all,
	})
}

// GET /api/network/franchises/:id/dashboard — franchisor drill-down into one unit.
func (h *DashboardHandler) FranchiseDrilldownView(c *gin.Context) {
	managed, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid franchise ID"})
		return
	}

	snap, err := store.LoadSnapshot(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}

	selected := scope.ResolveSelectedFranchiseID(principalFrom(c), &managed)
	view := scope.Project(selected, snap)
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":  view,
		"stats": stats.For(view.Franchise, snap),
	})
}

// GET /api/franchise/dashboard — a unit's own stats and activity counts.
func (h *DashboardHandler) MyDashboard(c *gin.Context) {
	snap, err := store.LoadSnapshot(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}

	// The franchisee's selection comes from the token alone; a managed id in
	// the query is ignored by design.
	selected := scope.ResolveSelectedFranchiseID(principalFrom(c), nil)
	view := scope.Project(selected, snap)
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":         stats.For(view.Franchise, snap),
		"open_leads":    countOpenLeads(view.Leads),
		"client_count":  len(view.Clients),
		"pending_tasks": countPendingTasks(view.Tasks),
	})
}

// GET /api/franchise/view — the full scoped projection for the caller's unit.
// A ?franchise_id= parameter is validated but never changes the selection:
// the caller is always pinned to their own unit. Franchisor drill-down goes
// through FranchiseDrilldownView instead.
func (h *DashboardHandler) ScopedView(c *gin.Context) {
	var managed *uuid.UUID
	if raw := c.Query("franchise_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid franchise ID"})
			return
		}
		managed = &id
	}

	snap, err := store.LoadSnapshot(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load data"})
		return
	}

	selected := scope.ResolveSelectedFranchiseID(principalFrom(c), managed)
	view := scope.Project(selected, snap)
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Franchise not found"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func countOpenLeads(leads []models.Lead) int {
	open := 0
	for _, l := range leads {
		if l.Status != models.LeadStatusWon && l.Status != models.LeadStatusLost {
			open++
		}
	}
	return open
}

func countPendingTasks(tasks []models.Task) int {
	pending := 0
	for _, t := range tasks {
		if !t.Done {
			pending++
		}
	}
	return pending
}
