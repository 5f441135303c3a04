package models

// Snapshot is the complete in-memory set of entity collections at a point in
// time. The stats and scope packages operate only on Snapshot values; they
// never touch the database. Slices carry no ordering guarantees.
type Snapshot struct {
	Franchises          []Franchise
	Clients             []Client
	Leads               []Lead
	LeadNotes           []LeadNote
	Tasks               []Task
	Transactions        []Transaction
	Consortiums         []Consortium
	CreditRecoveryCases []CreditRecoveryCase
	Sales               []Sale
	SaleItems           []SaleItem
	Contracts           []Contract
	Audits              []Audit
	FranchiseUsers      []User

	Products           []Product
	KnowledgeResources []KnowledgeBaseResource
	Announcements      []Announcement
	MarketingCampaigns []MarketingCampaign
	TrainingCourses    []TrainingCourse
	TrainingModules    []TrainingModule
}
