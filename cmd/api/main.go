package main

import (
	"log"
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

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Product{},
		&model.Warehouse{},
		&model.Partner{},
		&model.WarehouseStock{},
		&model.ProductBatch{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.User{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	warehouseRepo := repository.NewWarehouseRepo(db)
	partnerRepo := repository.NewPartnerRepo(db)
	stockRepo := repository.NewStockRepo(db)
	batchRepo := repository.NewBatchRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	txService := service.NewTransactionService(productRepo, warehouseRepo, partnerRepo, stockRepo, batchRepo, txRepo, db, wsHub)
	catalogService := service.NewCatalogService(productRepo, warehouseRepo, partnerRepo, stockRepo, batchRepo)
	dashService := service.NewDashboardService(txRepo)
	authService := service.NewAuthService(userRepo)

	txHandler := handler.NewTransactionHandler(txService)
	productHandler := handler.NewProductHandler(catalogService)
	warehouseHandler := handler.NewWarehouseHandler(catalogService)
	partnerHandler := handler.NewPartnerHandler(catalogService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Inventory API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// Products
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.Get)
	protected.Get("/products/:id/batches", productHandler.GetBatches)
	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleAdmin), productHandler.Delete)

	// Warehouses
	protected.Get("/warehouses", warehouseHandler.List)
	protected.Get("/warehouses/:id", warehouseHandler.Get)
	protected.Get("/warehouses/:id/stocks", warehouseHandler.GetStocks)
	protected.Post("/warehouses", warehouseHandler.Create)
	protected.Put("/warehouses/:id", warehouseHandler.Update)
	protected.Delete("/warehouses/:id", middleware.RequireRole(model.RoleAdmin), warehouseHandler.Delete)

	// Partners
	protected.Get("/partners", partnerHandler.List)
	protected.Get("/partners/:id", partnerHandler.Get)
	protected.Post("/partners", partnerHandler.Create)
	protected.Put("/partners/:id", partnerHandler.Update)
	protected.Delete("/partners/:id", middleware.RequireRole(model.RoleAdmin), partnerHandler.Delete)

	// Transactions (pembelian = stock-in, penjualan = stock-out)
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Get("/transactions/:id", txHandler.GetTransaction)
	protected.Post("/transactions/purchase", txHandler.Purchase)
	protected.Post("/transactions/sale", txHandler.CreateSale)

	// WebSocket Route
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
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin@example.com / admin123")
	}
}
