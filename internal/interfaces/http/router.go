package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	LocationUC       *usecase.LocationUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementLog      *inventory.MovementLogUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. /health y /metrics se montan en main.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory movements: cualquier rol autenticado
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementLog)
	invGroup.Post("/movements", inventoryHandler.CreateMovement)
	invGroup.Post("/movements/batch", inventoryHandler.CreateMovementBatch)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/records", inventoryHandler.ListRecords)
	invGroup.Get("/records/key", inventoryHandler.GetRecord)

	// Catálogo: altas para admin y bodeguero, bajas solo admin
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.LocationUC)
	writers := RequireRole(RoleAdmin, RoleBodeguero)
	adminOnly := RequireRole(RoleAdmin)

	catalog.Post("/products", writers, catalogHandler.CreateProduct)
	catalog.Get("/products/:id", catalogHandler.GetProduct)
	catalog.Post("/products/:id/variants", writers, catalogHandler.CreateVariant)
	catalog.Delete("/products/:id", adminOnly, catalogHandler.DeleteProduct)

	catalog.Post("/locations", writers, catalogHandler.CreateLocation)
	catalog.Get("/locations", catalogHandler.ListLocations)
	catalog.Get("/locations/:id", catalogHandler.GetLocation)
	catalog.Delete("/locations/:id", adminOnly, catalogHandler.DeleteLocation)

	catalog.Post("/lots", writers, catalogHandler.CreateLot)
	catalog.Get("/lots/:id", catalogHandler.GetLot)
	catalog.Post("/serials", writers, catalogHandler.CreateSerial)
	catalog.Get("/serials/:id", catalogHandler.GetSerial)
}
