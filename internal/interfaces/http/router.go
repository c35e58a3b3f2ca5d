package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Anvarmag/skladoptima/internal/application/auth"
	appsync "github.com/Anvarmag/skladoptima/internal/application/sync"
	"github.com/Anvarmag/skladoptima/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	StoreUC      *usecase.StoreUseCase
	ProductUC    *usecase.ProductUseCase
	SettingsUC   *usecase.SettingsUseCase
	StockUpdater *appsync.StockUpdater
	Reconciler   *appsync.Reconciler
	JWTSecret    string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stores
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	syncHandler := NewSyncHandler(deps.Reconciler)
	stores.Get("/", storeHandler.List)
	stores.Post("/", storeHandler.Create)
	stores.Put("/:id", storeHandler.Update)
	stores.Delete("/:id", storeHandler.Delete)
	stores.Post("/:id/sync", syncHandler.ReconcileStore)

	// Products (store selected via store-id header)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUpdater)
	importHandler := NewImportHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.BulkUpsert)
	products.Post("/import", importHandler.Import)
	products.Get("/export", importHandler.Export)
	products.Put("/:sku", productHandler.UpdateStocks)
	products.Delete("/:sku", productHandler.Delete)

	// Settings
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Post("/", settingsHandler.Save)

	// Manual full sync
	protected.Post("/sync/run", syncHandler.RunCycle)
}
