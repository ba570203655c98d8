package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sptryogi/tracking-po/internal/handler"
	"github.com/sptryogi/tracking-po/internal/model"
	"github.com/sptryogi/tracking-po/internal/repository"
	"github.com/sptryogi/tracking-po/internal/service"
	"github.com/sptryogi/tracking-po/internal/ws"
	"github.com/sptryogi/tracking-po/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate: tabel po_sales plus unique index no_po sebagai penjaga
	// terakhir race check-then-insert
	db.AutoMigrate(&model.PORecord{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	poRepo := repository.NewPORepo(db)

	poService := service.NewPOService(poRepo, wsHub)
	importService := service.NewImportService(poRepo, wsHub)
	dashService := service.NewDashboardService(poRepo)

	poHandler := handler.NewPOHandler(poService, importService)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Sistem Tracking PO & Status Pembayaran v1.0",
		BodyLimit: 10 * 1024 * 1024, // batas upload file import
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// PO CRUD
	api.Get("/pos", poHandler.GetPOs)
	api.Get("/pos/:id", poHandler.GetPO)
	api.Post("/pos", poHandler.CreatePO)
	api.Put("/pos/:id", poHandler.UpdatePO)
	api.Delete("/pos/:id", poHandler.DeletePO)

	// Dashboard
	api.Get("/dashboard/summary", dashHandler.GetSummary)
	api.Get("/dashboard/daily", dashHandler.GetDailyFinancials)

	// Excel import / export
	api.Get("/template", poHandler.DownloadTemplate)
	api.Post("/import", poHandler.ImportPOs)
	api.Get("/export", poHandler.ExportReport)

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

	// 7. Graceful Shutdown
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
