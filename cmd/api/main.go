package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-api/internal/handler"
	"go-warehouse-api/internal/middleware"
	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
	"go-warehouse-api/internal/service"
	"go-warehouse-api/internal/ws"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logging"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using process environment")
	}
	logging.Setup()

	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Sequence{},
		&model.Admin{},
		&model.Warehouse{},
		&model.WarehouseSection{},
		&model.Employee{},
		&model.Product{},
		&model.SubProduct{},
		&model.Item{},
		&model.Supplier{},
		&model.Carrier{},
		&model.Shipment{},
		&model.ShipmentItem{},
	); err != nil {
		log.WithError(err).Fatal("Auto migration failed")
	}

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Repositories
	adminRepo := repository.NewAdminRepo(db)
	warehouseRepo := repository.NewWarehouseRepo(db)
	sectionRepo := repository.NewSectionRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	productRepo := repository.NewProductRepo(db)
	subProductRepo := repository.NewSubProductRepo(db)
	itemRepo := repository.NewItemRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	carrierRepo := repository.NewCarrierRepo(db)
	shipmentRepo := repository.NewShipmentRepo(db)

	// Services
	authService := service.NewAuthService(adminRepo, warehouseRepo)
	adminService := service.NewAdminService(adminRepo, warehouseRepo)
	warehouseService := service.NewWarehouseService(warehouseRepo, sectionRepo, employeeRepo, itemRepo)
	inventoryService := service.NewInventoryService(productRepo, subProductRepo, itemRepo, supplierRepo, sectionRepo)
	directoryService := service.NewDirectoryService(supplierRepo, carrierRepo, employeeRepo, warehouseRepo)
	shipmentService := service.NewShipmentService(db, shipmentRepo, itemRepo, warehouseRepo, supplierRepo, carrierRepo, employeeRepo, wsHub)
	dashboardService := service.NewDashboardService(db, shipmentRepo, itemRepo, sectionRepo, warehouseRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService, authService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	app := fiber.New(fiber.Config{
		AppName: "Warehouse Management API v1.0",
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	requireAuth := middleware.RequireAuth(adminRepo)

	// Admin namespace. Register is open only until the first account exists.
	admin := app.Group("/api/admin")

	auth := admin.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", middleware.OptionalAuth(adminRepo), authHandler.Register)
	auth.Get("/verify", requireAuth, authHandler.Verify)

	profile := admin.Group("/profile", requireAuth)
	profile.Get("/", authHandler.Me)
	profile.Put("/", authHandler.UpdateMe)
	profile.Put("/password", authHandler.ChangePassword)

	// Admin user management
	users := admin.Group("/users", requireAuth, middleware.RequireAnyPermission(model.PermManageAdmins))
	users.Get("/", adminHandler.List)
	users.Get("/stats", adminHandler.Stats)
	users.Get("/:id", adminHandler.Get)
	users.Post("/", adminHandler.Create)
	users.Put("/:id", adminHandler.Update)
	users.Delete("/:id", adminHandler.Delete)
	users.Patch("/:id/status", adminHandler.SetActive)
	users.Patch("/:id/password", adminHandler.ResetPassword)

	// Dashboard. Health sits outside the analytics gate and is registered
	// first so the group's permission middleware does not apply to it.
	admin.Get("/dashboard/health", requireAuth, middleware.RequireSuperAdmin(), dashboardHandler.Health)
	dashboard := admin.Group("/dashboard", requireAuth, middleware.RequireAnyPermission(model.PermViewAnalytics))
	dashboard.Get("/overview", dashboardHandler.Overview)
	dashboard.Get("/warehouses", dashboardHandler.Warehouses)
	dashboard.Get("/inventory", dashboardHandler.Inventory)
	dashboard.Get("/shipments", dashboardHandler.Shipments)

	// Resource routes require a valid token; writes additionally require the
	// matching manage_* permission.

	// Warehouses and sections
	warehouses := app.Group("/warehouses", requireAuth)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", middleware.RequireWarehouseAccess(), warehouseHandler.Get)
	warehouses.Get("/:id/sections", middleware.RequireWarehouseAccess(), warehouseHandler.WarehouseSections)
	warehouses.Post("/", middleware.RequireAnyPermission(model.PermManageWarehouses), warehouseHandler.Create)
	warehouses.Put("/:id", middleware.RequireAnyPermission(model.PermManageWarehouses), middleware.RequireWarehouseAccess(), warehouseHandler.Update)
	warehouses.Delete("/:id", middleware.RequireAnyPermission(model.PermManageWarehouses), middleware.RequireWarehouseAccess(), warehouseHandler.Delete)

	sections := app.Group("/sections", requireAuth)
	sections.Get("/", warehouseHandler.ListSections)
	sections.Get("/:id", warehouseHandler.GetSection)
	sections.Post("/", middleware.RequireAnyPermission(model.PermManageWarehouses), middleware.RequireWarehouseAccess(), warehouseHandler.CreateSection)
	sections.Put("/:id", middleware.RequireAnyPermission(model.PermManageWarehouses), warehouseHandler.UpdateSection)
	sections.Delete("/:id", middleware.RequireAnyPermission(model.PermManageWarehouses), warehouseHandler.DeleteSection)

	// Directory
	employees := app.Group("/employees", requireAuth)
	employees.Get("/", directoryHandler.ListEmployees)
	employees.Get("/:id", directoryHandler.GetEmployee)
	employees.Post("/", middleware.RequireAnyPermission(model.PermManageEmployees), directoryHandler.CreateEmployee)
	employees.Put("/:id", middleware.RequireAnyPermission(model.PermManageEmployees), directoryHandler.UpdateEmployee)
	employees.Delete("/:id", middleware.RequireAnyPermission(model.PermManageEmployees), directoryHandler.DeleteEmployee)

	suppliers := app.Group("/suppliers", requireAuth)
	suppliers.Get("/", directoryHandler.ListSuppliers)
	suppliers.Get("/:id", directoryHandler.GetSupplier)
	suppliers.Post("/", middleware.RequireAnyPermission(model.PermManageSuppliers), directoryHandler.CreateSupplier)
	suppliers.Put("/:id", middleware.RequireAnyPermission(model.PermManageSuppliers), directoryHandler.UpdateSupplier)
	suppliers.Delete("/:id", middleware.RequireAnyPermission(model.PermManageSuppliers), directoryHandler.DeleteSupplier)

	carriers := app.Group("/carriers", requireAuth)
	carriers.Get("/", directoryHandler.ListCarriers)
	carriers.Get("/:id", directoryHandler.GetCarrier)
	carriers.Post("/", middleware.RequireAnyPermission(model.PermManageCarriers), directoryHandler.CreateCarrier)
	carriers.Put("/:id", middleware.RequireAnyPermission(model.PermManageCarriers), directoryHandler.UpdateCarrier)
	carriers.Delete("/:id", middleware.RequireAnyPermission(model.PermManageCarriers), directoryHandler.DeleteCarrier)

	// Catalog and stock
	products := app.Group("/products", requireAuth)
	products.Get("/", inventoryHandler.ListProducts)
	products.Get("/:id", inventoryHandler.GetProduct)
	products.Post("/", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.CreateProduct)
	products.Put("/:id", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.UpdateProduct)
	products.Delete("/:id", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.DeleteProduct)

	subProducts := app.Group("/sub-products", requireAuth)
	subProducts.Get("/", inventoryHandler.ListSubProducts)
	subProducts.Get("/:id", inventoryHandler.GetSubProduct)
	subProducts.Post("/", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.CreateSubProduct)
	subProducts.Put("/:id", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.UpdateSubProduct)
	subProducts.Delete("/:id", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.DeleteSubProduct)

	items := app.Group("/items", requireAuth)
	items.Get("/", middleware.RequireWarehouseAccess(), inventoryHandler.ListItems)
	items.Get("/:id", inventoryHandler.GetItem)
	items.Post("/", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.CreateItem)
	items.Put("/:id", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.UpdateItem)
	items.Delete("/:id", middleware.RequireAnyPermission(model.PermManageInventory), inventoryHandler.DeleteItem)

	// Shipments
	shipments := app.Group("/api/shipment-infos", requireAuth)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/stats", shipmentHandler.Stats)
	shipments.Get("/:id", shipmentHandler.Get)
	shipments.Post("/", middleware.RequireAnyPermission(model.PermManageShipments), shipmentHandler.Create)
	shipments.Put("/:id", middleware.RequireAnyPermission(model.PermManageShipments), shipmentHandler.Update)
	shipments.Patch("/:id/status", middleware.RequireAnyPermission(model.PermManageShipments), shipmentHandler.UpdateStatus)
	shipments.Delete("/:id", middleware.RequireAnyPermission(model.PermManageShipments), shipmentHandler.Delete)

	// WebSocket: shipment lifecycle events for dashboards
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		log.WithField("port", port).Info("Starting server")
		if err := app.Listen(":" + port); err != nil {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}
	log.Info("Server exited")
}
