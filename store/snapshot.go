package store

import (
	"fmt"

	"franquia-backend/models"

	"gorm.io/gorm"
)

// LoadSnapshot materializes every collection in one pass. The stats and
// scope packages then work on the returned value without touching the
// database again.
func LoadSnapshot(db *gorm.DB) (models.Snapshot, error) {
	var snap models.Snapshot

	load := func(name string, dest interface{}) error {
		if err := db.Find(dest).Error; err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		return nil
	}

	if err := load("franchises", &snap.Franchises); err != nil {
		return snap, err
	}
	if err := load("clients", &snap.Clients); err != nil {
		return snap, err
	}
	if err := load("leads", &snap.Leads); err != nil {
		return snap, err
	}
	if err := load("lead notes", &snap.LeadNotes); err != nil {
		return snap, err
	}
	if err := load("tasks", &snap.Tasks); err != nil {
		return snap, err
	}
	if err := load("transactions", &snap.Transactions); err != nil {
		return snap, err
	}
	if err := load("consortiums", &snap.Consortiums); err != nil {
		return snap, err
	}
	if err := load("credit recovery cases", &snap.CreditRecoveryCases); err != nil {
		return snap, err
	}
	if err := load("sales", &snap.Sales); err != nil {
		return snap, err
	}
	if err := load("sale items", &snap.SaleItems); err != nil {
		return snap, err
	}
	if err := load("contracts", &snap.Contracts); err != nil {
		return snap, err
	}
	if err := load("audits", &snap.Audits); err != nil {
		return snap, err
	}
	if err := db.Where("franchise_id IS NOT NULL").Find(&snap.FranchiseUsers).Error; err != nil {
		return snap, fmt.Errorf("load franchise users: %w", err)
	}

	if err := load("products", &snap.Products); err != nil {
		return snap, err
	}
	if err := load("knowledge resources", &snap.KnowledgeResources); err != nil {
		return snap, err
	}
	if err := load("announcements", &snap.Announcements); err != nil {
		return snap, err
	}
	if err := load("marketing campaigns", &snap.MarketingCampaigns); err != nil {
		return snap, err
	}
	if err := load("training courses", &snap.TrainingCourses); err != nil {
		return snap, err
	}
	if err := load("training modules", &snap.TrainingModules); err != nil {
		return snap, err
	}

	return snap, nil
}
