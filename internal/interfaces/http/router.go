package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/procurement"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	ZoneUC        *usecase.ZoneUseCase
	UserUC        *usecase.UserUseCase
	PurchaseOrder *procurement.PurchaseOrderUseCase
	Aggregator    *procurement.QuantityAggregator
	Manifests     *procurement.ManifestUseCase
	Receipts      *procurement.ReceiptUseCase
	Stock         *inventory.StockUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	buyers := RequireRole(entity.RoleAdmin, entity.RoleComprador)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", buyers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", buyers, productHandler.Update)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", buyers, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", buyers, supplierHandler.Update)

	zones := protected.Group("/zones")
	zoneHandler := NewZoneHandler(deps.ZoneUC)
	zones.Post("/", adminOnly, zoneHandler.Create)
	zones.Get("/", zoneHandler.List)
	zones.Get("/:id", zoneHandler.GetByID)
	zones.Put("/:id", adminOnly, zoneHandler.Update)

	inventoryHandler := NewInventoryHandler(deps.Stock)
	protected.Get("/inventory/stock", inventoryHandler.Stock)

	// Órdenes de compra
	pos := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrder, deps.Aggregator)
	pos.Post("/", buyers, poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Get("/:id/line-stats", poHandler.LineStats)
	pos.Put("/:id", buyers, poHandler.UpdateHeader)
	pos.Put("/:id/items", buyers, poHandler.ReplaceItems)
	pos.Post("/:id/submit", buyers, poHandler.Submit)
	pos.Post("/:id/approve", adminOnly, poHandler.Approve)
	pos.Post("/:id/reject", adminOnly, poHandler.Reject)
	pos.Post("/:id/deliver", warehouse, poHandler.MarkDelivered)
	pos.Post("/:id/cancel", buyers, poHandler.Cancel)

	// Recepción
	receiving := protected.Group("/receiving")
	manifestHandler := NewManifestHandler(deps.Manifests)
	receiptHandler := NewReceiptHandler(deps.Receipts)
	receiving.Post("/manifests", warehouse, manifestHandler.Create)
	receiving.Get("/manifests/search", manifestHandler.Search)
	receiving.Get("/manifests/:id", manifestHandler.GetByID)
	receiving.Get("/manifests/:id/lines", manifestHandler.Lines)
	receiving.Post("/manifests/:id/post", warehouse, manifestHandler.Post)
	receiving.Post("/manifests/:id/receipts", warehouse, receiptHandler.ReceiveFromManifest)
	receiving.Post("/manifest-lines/:id/verify-assets", warehouse, manifestHandler.VerifyAssets)
	receiving.Post("/purchase-orders/:id/receipts", warehouse, receiptHandler.ReceiveFromPurchaseOrder)
	receiving.Get("/receipts/:id", receiptHandler.GetByID)
	receiving.Get("/receipts/:id/pdf", receiptHandler.PDF)
}
