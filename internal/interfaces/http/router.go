package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexahost/portal-api/internal/application/auth"
	"github.com/nexahost/portal-api/internal/application/billing"
	"github.com/nexahost/portal-api/internal/application/catalog"
	"github.com/nexahost/portal-api/internal/application/requests"
	"github.com/nexahost/portal-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	IntakeUC   *requests.IntakeUseCase
	ReviewUC   *requests.ReviewUseCase
	DownloadUC *billing.DownloadUseCase
	CatalogUC  *catalog.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)

	// Auth: login is public; account creation and listing are admin-only.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authRequired, RequireRole(entity.RoleAdmin), authHandler.Register)
	api.Get("/users", authRequired, RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Catalog: reads are public, writes are admin-only.
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/categories", authRequired, RequireRole(entity.RoleAdmin), catalogHandler.CreateCategory)
	api.Get("/services", catalogHandler.ListServices)
	api.Post("/services", authRequired, RequireRole(entity.RoleAdmin), catalogHandler.CreateService)
	api.Put("/services/:id", authRequired, RequireRole(entity.RoleAdmin), catalogHandler.UpdateService)

	// Service requests: partners submit, admins review.
	requestHandler := NewRequestHandler(deps.IntakeUC, deps.ReviewUC)
	requestsGroup := api.Group("/requests", authRequired)
	requestsGroup.Post("/", RequireRole(entity.RolePartner, entity.RoleAdmin), requestHandler.Create)
	requestsGroup.Get("/", RequireRole(entity.RoleAdmin), requestHandler.List)
	requestsGroup.Get("/:id", RequireRole(entity.RoleAdmin), requestHandler.GetByID)
	requestsGroup.Post("/:id/approve", RequireRole(entity.RoleAdmin), requestHandler.Approve)
	requestsGroup.Post("/:id/reject", RequireRole(entity.RoleAdmin), requestHandler.Reject)

	// Purchases: any authenticated user; the use case scopes non-admins to
	// their own records.
	purchaseHandler := NewPurchaseHandler(deps.DownloadUC)
	purchases := api.Group("/purchases", authRequired)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id/invoice", purchaseHandler.DownloadInvoice)
}
