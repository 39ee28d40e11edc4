package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	ProductUC        *usecase.ProductUseCase
	CatalogUC        *usecase.CatalogUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	History          *inventory.HistoryUseCase
	Threshold        *inventory.ThresholdUseCase
	LowStock         LowStockService
	LowStockPDF      LowStockRenderer
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	ServiceName      string
}

// NewApp crea la aplicación Fiber con el ErrorHandler que traduce errores de dominio.
func NewApp(cfg fiber.Config, log *logger.Logger) *fiber.App {
	cfg.ErrorHandler = ErrorHandler(log)
	app := fiber.New(cfg)
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)
	sameCompany := RequireCompanyAccess()

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa (público): el primer usuario se registra contra una empresa existente.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies: las rutas con :company_id exigen que coincida con la empresa del token.
	companies := protected.Group("/companies")
	companies.Get("/", adminOnly, companyHandler.List)
	companies.Get("/:company_id", sameCompany, anyRole, companyHandler.GetByID)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	companies.Get("/:company_id/warehouses", sameCompany, anyRole, warehouseHandler.List)
	companies.Post("/:company_id/warehouses", sameCompany, adminOnly, warehouseHandler.Create)

	alertsHandler := NewAlertsHandler(deps.LowStock, deps.LowStockPDF)
	companies.Get("/:company_id/alerts/low-stock", sameCompany, anyRole, alertsHandler.LowStock)
	companies.Get("/:company_id/alerts/low-stock.pdf", sameCompany, anyRole, alertsHandler.LowStockPDF)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CatalogUC)
	products.Post("/", stockRoles, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/:id/suppliers", adminOnly, productHandler.AddSupplier)
	products.Get("/:id/suppliers", anyRole, productHandler.ListSuppliers)
	products.Post("/:id/components", adminOnly, productHandler.AddComponent)
	products.Get("/:id/components", anyRole, productHandler.ListComponents)

	// Catálogo de referencia
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Post("/product-types", adminOnly, catalogHandler.CreateProductType)
	protected.Get("/product-types", anyRole, catalogHandler.ListProductTypes)
	protected.Post("/suppliers", adminOnly, catalogHandler.CreateSupplier)
	protected.Get("/suppliers", anyRole, catalogHandler.ListSuppliers)

	// Inventory: el vendedor solo registra ventas (lo valida el caso de uso).
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.History, deps.Threshold)
	invGroup.Post("/movements", anyRole, inventoryHandler.RegisterMovement)
	invGroup.Get("/transactions", stockRoles, inventoryHandler.ListTransactions)
	invGroup.Put("/threshold", stockRoles, inventoryHandler.SetThreshold)
}
