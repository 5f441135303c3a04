package routes

import (
	"time"

	"franquia-backend/firebase"
	"franquia-backend/handlers"
	"franquia-backend/middleware"
	"franquia-backend/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage firebase.StorageClient) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	franchiseHandler := &handlers.FranchiseHandler{DB: db}
	dashboardHandler := &handlers.DashboardHandler{DB: db}
	leadHandler := &handlers.LeadHandler{DB: db, Writer: store.NewFallbackWriter(db)}
	clientHandler := &handlers.ClientHandler{DB: db}
	taskHandler := &handlers.TaskHandler{DB: db}
	transactionHandler := &handlers.TransactionHandler{DB: db}
	consortiumHandler := &handlers.ConsortiumHandler{DB: db}
	recoveryHandler := &handlers.CreditRecoveryHandler{DB: db}
	saleHandler := &handlers.SaleHandler{DB: db}
	auditHandler := &handlers.AuditHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	announcementHandler := &handlers.AnnouncementHandler{DB: db}
	campaignHandler := &handlers.CampaignHandler{DB: db, Storage: storage}
	knowledgeHandler := &handlers.KnowledgeHandler{DB: db, Storage: storage}
	trainingHandler := &handlers.TrainingHandler{DB: db}
	franchiseUserHandler := &handlers.FranchiseUserHandler{DB: db}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
	}

	// Protected routes shared by both roles
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/change-password", authHandler.ChangePassword)

		// Account creation is reserved to the network operator
		protected.POST("/auth/register", middleware.FranchisorMiddleware(), authHandler.Register)

		// Network-wide shared content
		protected.GET("/announcements", announcementHandler.GetAnnouncements)
		protected.GET("/campaigns", campaignHandler.GetCampaigns)
		protected.GET("/resources", knowledgeHandler.GetResources)
		protected.GET("/courses", trainingHandler.GetCourses)
		protected.GET("/courses/:id", trainingHandler.GetCourse)
		protected.GET("/products", productHandler.GetProducts)
	}

	// Franchisor routes (network operator)
	network := api.Group("/network")
	network.Use(middleware.AuthMiddleware())
	network.Use(middleware.FranchisorMiddleware())
	{
		// Dashboards
		network.GET("/dashboard", dashboardHandler.NetworkDashboard)
		network.GET("/franchises/stats", dashboardHandler.ListFranchisesWithStats)
		network.GET("/franchises/:id/dashboard", dashboardHandler.FranchiseDrilldownView)

		// Franchise management
		network.GET("/franchises/:id", franchiseHandler.GetFranchise)
		network.POST("/franchises", franchiseHandler.CreateFranchise)
		network.PUT("/franchises/:id", franchiseHandler.UpdateFranchise)
		network.DELETE("/franchises/:id", franchiseHandler.DeleteFranchise)

		// Franchise product allow-list
		network.GET("/franchises/:id/products", productHandler.GetFranchiseProducts)
		network.POST("/franchises/:id/products", productHandler.AddFranchiseProduct)
		network.DELETE("/franchises/:id/products/:productId", productHandler.RemoveFranchiseProduct)

		// Network-level finance
		network.GET("/transactions", transactionHandler.GetNetworkTransactions)

		// Audits
		network.GET("/audits", auditHandler.GetNetworkAudits)
		network.POST("/audits", auditHandler.CreateAudit)
		network.PUT("/audits/:id", auditHandler.UpdateAudit)
		network.DELETE("/audits/:id", auditHandler.DeleteAudit)

		// Catalog management
		network.POST("/products", productHandler.CreateProduct)
		network.PUT("/products/:id", productHandler.UpdateProduct)
		network.DELETE("/products/:id", productHandler.DeleteProduct)

		// Announcements
		network.POST("/announcements", announcementHandler.CreateAnnouncement)
		network.PUT("/announcements/:id", announcementHandler.UpdateAnnouncement)
		network.DELETE("/announcements/:id", announcementHandler.DeleteAnnouncement)

		// Marketing campaigns
		network.POST("/campaigns", campaignHandler.CreateCampaign)
		network.PUT("/campaigns/:id", campaignHandler.UpdateCampaign)
		network.PUT("/campaigns/:id/image", campaignHandler.UpdateCampaignImage)
		network.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)

		// Knowledge base
		network.POST("/resources", knowledgeHandler.CreateResource)
		network.PUT("/resources/:id", knowledgeHandler.UpdateResource)
		network.DELETE("/resources/:id", knowledgeHandler.DeleteResource)

		// Training
		network.POST("/courses", trainingHandler.CreateCourse)
		network.PUT("/courses/:id", trainingHandler.UpdateCourse)
		network.DELETE("/courses/:id", trainingHandler.DeleteCourse)
		network.POST("/courses/:id/modules", trainingHandler.AddModule)
		network.PUT("/courses/:id/modules/:moduleId", trainingHandler.UpdateModule)
		network.DELETE("/courses/:id/modules/:moduleId", trainingHandler.DeleteModule)
	}

	// Franchisee routes (unit operator; franchise comes from the token)
	franchise := api.Group("/franchise")
	franchise.Use(middleware.AuthMiddleware())
	franchise.Use(middleware.FranchiseeMiddleware())
	{
		franchise.GET("/dashboard", dashboardHandler.MyDashboard)
		franchise.GET("/view", dashboardHandler.ScopedView)

		franchise.GET("/me", franchiseHandler.GetMyFranchise)
		franchise.PUT("/me", franchiseHandler.UpdateMyFranchise)

		// Staff
		franchise.GET("/users", franchiseUserHandler.GetUsers)
		franchise.POST("/users", franchiseUserHandler.InviteUser)
		franchise.PUT("/users/:id", franchiseUserHandler.UpdateUser)
		franchise.DELETE("/users/:id", franchiseUserHandler.RemoveUser)

		// Clients
		franchise.GET("/clients", clientHandler.GetClients)
		franchise.GET("/clients/:id", clientHandler.GetClient)
		franchise.POST("/clients", clientHandler.CreateClient)
		franchise.PUT("/clients/:id", clientHandler.UpdateClient)
		franchise.DELETE("/clients/:id", clientHandler.DeleteClient)

		// Leads
		franchise.GET("/leads", leadHandler.GetLeads)
		franchise.GET("/leads/:id", leadHandler.GetLead)
		franchise.POST("/leads", leadHandler.CreateLead)
		franchise.PUT("/leads/:id", leadHandler.UpdateLead)
		franchise.PUT("/leads/:id/status", leadHandler.UpdateLeadStatus)
		franchise.DELETE("/leads/:id", leadHandler.DeleteLead)
		franchise.POST("/leads/:id/notes", leadHandler.AddLeadNote)

		// Tasks
		franchise.GET("/tasks", taskHandler.GetTasks)
		franchise.POST("/tasks", taskHandler.CreateTask)
		franchise.PUT("/tasks/:id", taskHandler.UpdateTask)
		franchise.DELETE("/tasks/:id", taskHandler.DeleteTask)

		// Finance
		franchise.GET("/transactions", transactionHandler.GetTransactions)
		franchise.POST("/transactions", transactionHandler.CreateTransaction)
		franchise.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

		// Consortiums
		franchise.GET("/consortiums", consortiumHandler.GetConsortiums)
		franchise.POST("/consortiums", consortiumHandler.CreateConsortium)
		franchise.PUT("/consortiums/:id", consortiumHandler.UpdateConsortium)
		franchise.DELETE("/consortiums/:id", consortiumHandler.DeleteConsortium)

		// Credit recovery
		franchise.GET("/recovery-cases", recoveryHandler.GetCases)
		franchise.POST("/recovery-cases", recoveryHandler.CreateCase)
		franchise.PUT("/recovery-cases/:id/status", recoveryHandler.UpdateCaseStatus)
		franchise.DELETE("/recovery-cases/:id", recoveryHandler.DeleteCase)

		// Sales and contracts
		franchise.GET("/sales", saleHandler.GetSales)
		franchise.GET("/sales/:id", saleHandler.GetSale)
		franchise.POST("/sales", saleHandler.CreateSale)
		franchise.DELETE("/sales/:id", saleHandler.DeleteSale)
		franchise.GET("/sales/:id/contract", saleHandler.GetContract)
		franchise.POST("/sales/:id/contract", saleHandler.CreateContract)
		franchise.PUT("/sales/:id/contract/sign", saleHandler.SignContract)

		// Products available to this unit
		franchise.GET("/products", productHandler.GetAvailableProducts)

		// Audits on this unit
		franchise.GET("/audits", auditHandler.GetMyAudits)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
