package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/streetcare/pointpay/internal/domain/entity"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/handler"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth        *handler.AuthHandler
	Transaction *handler.TransactionHandler
	Allocation  *handler.AllocationHandler
	Beneficiary *handler.BeneficiaryHandler
	Store       *handler.StoreHandler
	Product     *handler.ProductHandler
	User        *handler.UserHandler
	Association *handler.AssociationHandler
	Config      *handler.ConfigHandler
	Report      *handler.ReportHandler
	Health      *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, tokens coreport.TokenManager, logger coreport.Logger) {
	router.GET("/health", h.Health.Check)
	router.POST("/auth/login", h.Auth.Login)

	authed := router.Group("/", middleware.RequireAuth(tokens, logger))

	// Admin staff: full platform administration
	adminOnly := middleware.RequireRoles(entity.RoleSystemAdmin, entity.RoleNGOAdmin)
	staff := middleware.RequireRoles(entity.RoleSystemAdmin, entity.RoleNGOAdmin, entity.RoleNGOPartner)
	// Store operators create transactions and manage their own catalog
	storeOps := middleware.RequireRoles(
		entity.RoleSystemAdmin, entity.RoleNGOAdmin, entity.RoleNGOPartner,
		entity.RoleStore, entity.RoleAssociationAdmin, entity.RoleAssociationPartner,
	)

	beneficiaries := authed.Group("/beneficiaries")
	{
		beneficiaries.POST("", staff, h.Beneficiary.Create)
		beneficiaries.GET("", staff, h.Beneficiary.List)
		beneficiaries.GET("/:id", staff, h.Beneficiary.Get)
		beneficiaries.GET("/qr/:qr", staff, h.Beneficiary.GetByQR)
		beneficiaries.PATCH("/:id", staff, h.Beneficiary.Update)
		beneficiaries.DELETE("/:id", adminOnly, h.Beneficiary.Delete)
		beneficiaries.POST("/:id/reissue-qr", staff, h.Beneficiary.ReissueQR)
		beneficiaries.GET("/:id/transactions", staff, h.Transaction.ListByBeneficiary)
		beneficiaries.GET("/:id/allocations", staff, h.Allocation.ListByBeneficiary)
	}

	stores := authed.Group("/stores")
	{
		stores.POST("", staff, h.Store.Create)
		stores.GET("", staff, h.Store.List)
		stores.GET("/:id", storeOps, h.Store.Get)
		stores.PATCH("/:id", staff, h.Store.Update)
		stores.DELETE("/:id", adminOnly, h.Store.Delete)
		stores.POST("/:id/products", storeOps, h.Product.Create)
		stores.GET("/:id/products", storeOps, h.Product.ListByStore)
		stores.GET("/:id/transactions", storeOps, h.Transaction.ListByStore)
	}

	products := authed.Group("/products")
	{
		products.GET("/:id", storeOps, h.Product.Get)
		products.PATCH("/:id", storeOps, h.Product.Update)
		products.DELETE("/:id", storeOps, h.Product.Delete)
	}

	transactions := authed.Group("/transactions")
	{
		transactions.POST("", storeOps, h.Transaction.Create)
		transactions.GET("", staff, h.Transaction.List)
		transactions.GET("/:id", storeOps, h.Transaction.Get)
	}

	// Scanner pre-flight checks, used at the point of sale
	validate := authed.Group("/validate")
	{
		validate.GET("/beneficiary/:qr", storeOps, h.Transaction.ValidateBeneficiary)
		validate.GET("/store/:qr", storeOps, h.Transaction.ValidateStore)
	}

	allocations := authed.Group("/allocations")
	{
		allocations.POST("", staff, h.Allocation.Create)
		allocations.GET("", staff, h.Allocation.List)
		allocations.GET("/:id", staff, h.Allocation.Get)
	}

	users := authed.Group("/users")
	{
		users.POST("", adminOnly, h.User.Create)
		users.GET("", adminOnly, h.User.List)
		users.GET("/:id", adminOnly, h.User.Get)
		users.PATCH("/:id", adminOnly, h.User.Update)
		users.DELETE("/:id", adminOnly, h.User.Delete)
	}

	associations := authed.Group("/associations")
	{
		associations.POST("", adminOnly, h.Association.Create)
		associations.GET("", staff, h.Association.List)
		associations.GET("/:id", staff, h.Association.Get)
		associations.GET("/:id/stores", staff, h.Association.ListStores)
		associations.PATCH("/:id", adminOnly, h.Association.Update)
		associations.DELETE("/:id", adminOnly, h.Association.Delete)
	}

	config := authed.Group("/config")
	{
		config.GET("", adminOnly, h.Config.List)
		config.GET("/:key", adminOnly, h.Config.Get)
		config.PUT("/:key", adminOnly, h.Config.Set)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/summary", staff, h.Report.Summary)
		reports.GET("/transactions.csv", staff, h.Report.ExportTransactions)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
