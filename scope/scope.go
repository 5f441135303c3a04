// Package scope computes the slice of a snapshot a principal is authorized
// to see. Like stats, it is pure: no I/O, inputs never mutated.
package scope

import (
	"franquia-backend/models"

	"github.com/google/uuid"
)

// Principal is the authenticated caller, built from verified token claims.
type Principal struct {
	Role        string
	FranchiseID *uuid.UUID
}

// View is the subset of every collection visible for one selected franchise.
// Global collections pass through unfiltered; they are not tenant-owned.
type View struct {
	Franchise           models.Franchise               `json:"franchise"`
	Clients             []models.Client                `json:"clients"`
	Leads               []models.Lead                  `json:"leads"`
	LeadNotes           []models.LeadNote              `json:"lead_notes"`
	Tasks               []models.Task                  `json:"tasks"`
	Transactions        []models.Transaction           `json:"transactions"`
	Consortiums         []models.Consortium            `json:"consortiums"`
	CreditRecoveryCases []models.CreditRecoveryCase    `json:"credit_recovery_cases"`
	Sales               []models.Sale                  `json:"sales"`
	SaleItems           []models.SaleItem              `json:"sale_items"`
	Contracts           []models.Contract              `json:"contracts"`
	Audits              []models.Audit                 `json:"audits"`
	FranchiseUsers      []models.User                  `json:"franchise_users"`
	Products            []models.Product               `json:"products"`
	KnowledgeResources  []models.KnowledgeBaseResource `json:"knowledge_resources"`
	Announcements       []models.Announcement          `json:"announcements"`
	MarketingCampaigns  []models.MarketingCampaign     `json:"marketing_campaigns"`
	TrainingCourses     []models.TrainingCourse        `json:"training_courses"`
	TrainingModules     []models.TrainingModule        `json:"training_modules"`
}

// ResolveSelectedFranchiseID decides which franchise, if any, the principal
// is looking at. A franchisee is always pinned to their own unit; the managed
// id is consulted only for franchisors. This is the sole authorization gate
// for data visibility.
func ResolveSelectedFranchiseID(p Principal, managed *uuid.UUID) *uuid.UUID {
	if p.Role == models.RoleFranchisor && managed != nil {
		return managed
	}
	if p.Role == models.RoleFranchisee {
		return p.FranchiseID
	}
	return nil
}

// Project filters every collection in the snapshot down to the selected
// franchise. With no selection the franchise-scoped collections are empty
// and only global content remains. A selection that matches no franchise in
// the snapshot yields nil: not found, not an error.
func Project(selected *uuid.UUID, snap models.Snapshot) *View {
	v := &View{
		Products:           snap.Products,
		KnowledgeResources: snap.KnowledgeResources,
		Announcements:      snap.Announcements,
		MarketingCampaigns: snap.MarketingCampaigns,
		TrainingCourses:    snap.TrainingCourses,
		TrainingModules:    snap.TrainingModules,
	}
	if selected == nil {
		return v
	}

	id := *selected
	found := false
	for _, f := range snap.Franchises {
		if f.ID == id {
			v.Franchise = f
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	for _, cl := range snap.Clients {
		if cl.FranchiseID == id {
			v.Clients = append(v.Clients, cl)
		}
	}

	leadIDs := make(map[uuid.UUID]bool)
	for _, l := range snap.Leads {
		if l.FranchiseID == id {
			v.Leads = append(v.Leads, l)
			leadIDs[l.ID] = true
		}
	}
	for _, n := range snap.LeadNotes {
		if leadIDs[n.LeadID] {
			v.LeadNotes = append(v.LeadNotes, n)
		}
	}

	for _, t := range snap.Tasks {
		if t.FranchiseID == id {
			v.Tasks = append(v.Tasks, t)
		}
	}
	for _, tr := range snap.Transactions {
		if tr.FranchiseID == id {
			v.Transactions = append(v.Transactions, tr)
		}
	}
	for _, co := range snap.Consortiums {
		if co.FranchiseID == id {
			v.Consortiums = append(v.Consortiums, co)
		}
	}
	for _, cr := range snap.CreditRecoveryCases {
		if cr.FranchiseID == id {
			v.CreditRecoveryCases = append(v.CreditRecoveryCases, cr)
		}
	}

	saleIDs := make(map[uuid.UUID]bool)
	for _, s := range snap.Sales {
		if s.FranchiseID == id {
			v.Sales = append(v.Sales, s)
			saleIDs[s.ID] = true
		}
	}
	for _, si := range snap.SaleItems {
		if saleIDs[si.SaleID] {
			v.SaleItems = append(v.SaleItems, si)
		}
	}
	for _, ct := range snap.Contracts {
		if saleIDs[ct.SaleID] {
			v.Contracts = append(v.Contracts, ct)
		}
	}

	for _, a := range snap.Audits {
		if a.FranchiseID == id {
			v.Audits = append(v.Audits, a)
		}
	}
	for _, u := range snap.FranchiseUsers {
		if u.FranchiseID != nil && *u.FranchiseID == id {
			v.FranchiseUsers = append(v.FranchiseUsers, u)
		}
	}

	return v
}
